package datastore

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Store holds the settings the service needs to reach one worksheet.
// Empty fields fall back to environment variables on load.
type Store struct {
	SpreadsheetID   string
	CredentialsFile string
	SheetTitle      string
	// ValueInput is the remote input interpretation mode,
	// "USER_ENTERED" or "RAW".
	ValueInput string
}

type Config struct {
	Filename string
	Store    Store
}

// Save writes the current config out to a toml file.
func (c *Config) Save() error {
	b, err := toml.Marshal(c.Store)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Filename, b, 0644)
}

// Load reads the current config from a toml file.
func (c *Config) Load() error {
	b, err := os.ReadFile(c.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &c.Store)
}

func New(filename string) (*Config, error) {
	c := &Config{
		Filename: filename,
	}
	if err := c.Load(); err != nil {
		if os.IsNotExist(err) {
			if err := c.Save(); err != nil {
				return nil, err
			}
		}
	}
	// Set some defaults
	if c.Store.SpreadsheetID == "" {
		c.Store.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
	}
	if c.Store.CredentialsFile == "" {
		c.Store.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if c.Store.SheetTitle == "" {
		c.Store.SheetTitle = "Sheet1"
	}
	if c.Store.ValueInput == "" {
		c.Store.ValueInput = "USER_ENTERED"
	}
	return c, nil
}
