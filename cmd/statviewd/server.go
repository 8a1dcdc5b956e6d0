package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/statview/internal/reportserver"
)

// runServer starts the report API and blocks until a shutdown signal.
func runServer(cfg appConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	defs := reportserver.SampleDefinitions()
	if cfg.ReportsPath != "" {
		loaded, err := reportserver.LoadDefinitions(cfg.ReportsPath)
		if err != nil {
			return fmt.Errorf("loading report definitions: %w", err)
		}
		defs = loaded
	}

	source := reportserver.NewSource(time.Now(), defs)
	server := reportserver.NewServer(cfg.APIAddr, source)
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting report server: %w", err)
	}

	log.Printf("statviewd: serving %d reports on %s", len(source.Descriptors()), cfg.APIAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-sigCh:
			log.Println("statviewd: shutting down")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return server.Stop()
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
