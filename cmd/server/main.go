package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	servercmd "github.com/louisbranch/charkeep/internal/cmd/server"
)

func main() {
	cfg, err := servercmd.ParseConfig()
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	log.SetPrefix("[CHARKEEP] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := servercmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
