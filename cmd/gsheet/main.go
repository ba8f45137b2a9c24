package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gsheet/pkg/datastore"
	"gsheet/pkg/transport"
	"gsheet/pkg/worksheet"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configPath := flag.String("config", "gsheet.toml", "Path to the config file")
	ref := flag.String("ref", "", "Cell reference to read or write, e.g. C7")
	set := flag.String("set", "", "Value to write at -ref")
	row := flag.Int("row", 0, "Row to read, or to write with -values")
	values := flag.String("values", "", "Comma-separated values to write at -row")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if *ref == "" && *row == 0 {
		log.Error("You must specify a cell with -ref or a row with -row")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := datastore.New(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := transport.NewClient(ctx,
		cfg.Store.CredentialsFile,
		cfg.Store.SpreadsheetID,
		transport.ValueInput(cfg.Store.ValueInput),
	)
	if err != nil {
		log.Fatalf("Failed to create sheets client: %v", err)
	}
	info, err := client.SheetByTitle(ctx, cfg.Store.SheetTitle, false)
	if err != nil {
		log.Fatalf("Failed to open sheet %q: %v", cfg.Store.SheetTitle, err)
	}
	ws := worksheet.New(client, info)

	if err := run(ctx, ws, *ref, *set, *row, *values); err != nil {
		log.Fatalf("Operation failed: %v", err)
	}
}

func run(ctx context.Context, ws *worksheet.Worksheet, ref, set string, row int, values string) error {
	switch {
	case ref != "" && set != "":
		return ws.UpdateValueByRef(ctx, ref, set)
	case ref != "":
		v, err := ws.ValueByRef(ctx, ref)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	case values != "":
		parts := strings.Split(values, ",")
		vals := make([]interface{}, len(parts))
		for i, p := range parts {
			vals[i] = strings.TrimSpace(p)
		}
		return ws.InsertRow(ctx, row, vals, worksheet.SliceOptions{})
	default:
		vs, err := ws.Row(ctx, row, worksheet.SliceOptions{})
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(vs, "\t"))
		return nil
	}
}
