package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vision-27/Teachi/internal/app"
	"github.com/vision-27/Teachi/internal/config"
	"github.com/vision-27/Teachi/internal/lesson"
	"github.com/vision-27/Teachi/internal/llm"
	"github.com/vision-27/Teachi/internal/server/mcp"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configPath  = flag.String("config", "", "Path to config file")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Teachi MCP v%s\n", Version)
		fmt.Printf("  Commit:  %s\n", GitCommit)
		fmt.Printf("  Built:   %s\n", BuildTime)
		os.Exit(0)
	}

	// Stdout carries the MCP protocol; everything else goes to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := lesson.NewStore()
	if cfg.Lessons.File != "" {
		store, err = lesson.LoadStore(cfg.Lessons.File)
		if err != nil {
			log.Error("failed to load lessons", "error", err)
			os.Exit(1)
		}
	}

	inferencer := llm.NewClient(cfg.LLM.Command, cfg.LLM.Args)

	// Text turns only over MCP: no listener, no speech output
	assistant := app.NewAssistant(nil, inferencer, nil, store, log)

	server := mcp.NewServer(mcp.Config{
		ServerName:    "teachi",
		ServerVersion: Version,
	}, assistant, store)

	if err := server.Start(context.Background()); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}
