package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/server"
)

func main() {
	catalogPath := flag.String("catalog", "", "Path to a JSON word list catalog. Defaults to the built-in catalog.")
	addr := flag.String("addr", "", "Listen address, overrides WORDFALL_ADDR.")
	flag.Parse()

	_ = godotenv.Load()
	logger := log.New(os.Stderr, "wordfall-server: ", log.LstdFlags)

	cfg, err := engine.ConfigFromEnv()
	if err != nil {
		logger.Fatalf("Failed to load engine config: %v", err)
	}
	srvCfg, err := server.ConfigFromEnv()
	if err != nil {
		logger.Fatalf("Failed to load server config: %v", err)
	}
	if *addr != "" {
		srvCfg.Addr = *addr
	}

	catalog := content.DefaultCatalog()
	if *catalogPath != "" {
		if catalog, err = content.LoadCatalog(*catalogPath); err != nil {
			logger.Fatalf("Failed to load catalog: %v", err)
		}
	}
	logger.Printf("Loaded %d word lists", catalog.Len())

	e, err := engine.New(catalog, cfg, engine.WithLogger(logger))
	if err != nil {
		logger.Fatalf("Failed to create engine: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(e, srvCfg, logger).ListenAndServe(ctx); err != nil {
		logger.Printf("Server failed: %v", err)
	}
	if err := e.Close(); err != nil {
		logger.Printf("Engine close: %v", err)
	}
}
