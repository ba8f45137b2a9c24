package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gsheet/pkg/api"
	"gsheet/pkg/datastore"
	"gsheet/pkg/transport"
	"gsheet/pkg/worksheet"

	log "github.com/sirupsen/logrus"
)

var (
	listenAddress = ":80"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configPath := flag.String("config", "gsheet.toml", "Path to the config file")

	flag.Parse()
	if *verbose {
		// Set the log level to debug
		log.SetLevel(log.DebugLevel)
	}
	// Set the log format to include a leading timestamp in ISO8601 format
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

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
	info, err := client.SheetByTitle(ctx, cfg.Store.SheetTitle, true)
	if err != nil {
		log.Fatalf("Failed to open sheet %q: %v", cfg.Store.SheetTitle, err)
	}
	ws := worksheet.New(client, info)
	log.Infof("serving sheet %q (%dx%d)", ws.Title(), ws.RowCount(), ws.ColumnCount())

	router := api.GetRouter(ws)
	if router != nil {
		go startServer(router)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

mainloop:
	// In all cases, just exit and let the container restart from scratch.
	// There's less to get wrong doing it this way.
	for {
		select {
		case <-signalChan:
			log.Info("Signalled, breaking main loop")
			break mainloop
		}
	}
}

func startServer(router http.Handler) {
	server := http.Server{
		Addr:              listenAddress,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
