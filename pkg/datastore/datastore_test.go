package datastore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Store.SpreadsheetID = "abc123"
	c.Store.SheetTitle = "Inventory"
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c2, err := New(path)
	if err != nil {
		t.Fatalf("New (reload): %v", err)
	}
	if c2.Store.SpreadsheetID != "abc123" || c2.Store.SheetTitle != "Inventory" {
		t.Errorf("reloaded store = %+v", c2.Store)
	}
}

func TestDefaults(t *testing.T) {
	os.Unsetenv("SPREADSHEET_ID")
	path := filepath.Join(t.TempDir(), "config.toml")
	c, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Store.SheetTitle != "Sheet1" {
		t.Errorf("SheetTitle = %q, want Sheet1", c.Store.SheetTitle)
	}
	if c.Store.ValueInput != "USER_ENTERED" {
		t.Errorf("ValueInput = %q, want USER_ENTERED", c.Store.ValueInput)
	}
}
