package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/cardstore"
	"github.com/five82/swipedeck/internal/config"
	"github.com/five82/swipedeck/internal/docserver"
	"github.com/five82/swipedeck/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8088", "listen address")
	cardsPath := flag.String("cards", "", "YAML card file to serve (optional, defaults to the demo deck)")
	collection := flag.String("collection", cardstore.DefaultCollection, "collection id to answer for")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	lvl, err := config.ParseLogLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deckserve: %v\n", err)
		return 2
	}
	logger := logging.NewJSON(os.Stdout, lvl)

	var cards []card.Card
	if *cardsPath == "" {
		cards = cardstore.Demo()
	} else if cards, err = cardstore.LoadFile(*cardsPath); err != nil {
		logger.Error("load cards", "path", *cardsPath, "error", err)
		return 1
	}

	catalog := docserver.NewCatalog(cards)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *cardsPath != "" {
		go reloadOnHangup(ctx, catalog, *cardsPath, logger)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           docserver.New(catalog, *collection, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("deckserve listening", "addr", *addr, "collection", *collection, "cards", len(cards))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
			return 1
		}
		logger.Info("deckserve stopped")
	}
	return 0
}

// reloadOnHangup re-reads the card file on every SIGHUP until ctx ends. A
// failed reload keeps serving the previous cards.
func reloadOnHangup(ctx context.Context, catalog *docserver.Catalog, path string, logger *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
		}
		cards, err := cardstore.LoadFile(path)
		catalog.Update(cards, err)
		if err != nil {
			logger.Warn("reload cards", "path", path, "error", err)
			continue
		}
		logger.Info("reloaded cards", "path", path, "cards", len(cards))
	}
}
