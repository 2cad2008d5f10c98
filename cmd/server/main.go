package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vision-27/Teachi/internal/app"
	"github.com/vision-27/Teachi/internal/audio"
	"github.com/vision-27/Teachi/internal/config"
	"github.com/vision-27/Teachi/internal/lesson"
	"github.com/vision-27/Teachi/internal/llm"
	"github.com/vision-27/Teachi/internal/server/httpapi"
	"github.com/vision-27/Teachi/internal/stt"
	"github.com/vision-27/Teachi/internal/tts"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configPath  = flag.String("config", "", "Path to config file (default: ~/.teachirc, /etc/teachi/config.yaml)")
	listDevices = flag.Bool("list-devices", false, "List audio capture devices and exit")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Teachi server v%s\n", Version)
		fmt.Printf("  Commit:  %s\n", GitCommit)
		fmt.Printf("  Built:   %s\n", BuildTime)
		os.Exit(0)
	}

	if *listDevices {
		devices, err := audio.ListDevices()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing devices: %v\n", err)
			os.Exit(1)
		}
		for _, d := range devices {
			fmt.Println(d.String())
		}
		os.Exit(0)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Load the recognition model once; a missing model aborts startup
	log.Info("loading speech recognition model", "path", cfg.Speech.ModelPath)
	model, err := stt.LoadModel(stt.Config{
		ModelPath:  cfg.Speech.ModelPath,
		SampleRate: cfg.Speech.SampleRate,
	})
	if err != nil {
		log.Error("failed to load speech model", "error", err)
		os.Exit(1)
	}
	defer model.Close()

	// Lesson store: built-in demo data unless a lessons file is configured
	store := lesson.NewStore()
	if cfg.Lessons.File != "" {
		store, err = lesson.LoadStore(cfg.Lessons.File)
		if err != nil {
			log.Error("failed to load lessons", "error", err)
			os.Exit(1)
		}
	}

	captureConfig := audio.CaptureConfig{
		SampleRate: uint32(cfg.Speech.SampleRate),
		Channels:   1,
		FrameSize:  uint32(cfg.Speech.FrameSize),
		DeviceID:   cfg.Speech.Device,
	}
	listener := app.NewListener(
		app.ListenerConfig{
			Timeout:         cfg.ListenTimeout(),
			PhraseTimeLimit: cfg.PhraseLimit(),
		},
		model,
		func() (audio.Capturer, error) { return audio.NewCapturer(captureConfig) },
		log,
	)

	inferencer := llm.NewClient(cfg.LLM.Command, cfg.LLM.Args)

	speechWorker := tts.NewWorker(func() (tts.Engine, error) {
		return tts.NewEspeakEngine(tts.Config{
			Command: cfg.TTS.Command,
			Voice:   cfg.TTS.Voice,
			Rate:    cfg.TTS.Rate,
		})
	}, cfg.TTS.QueueSize, log)
	defer speechWorker.Shutdown()

	assistant := app.NewAssistant(listener, inferencer, speechWorker, store, log)

	server := httpapi.New(httpapi.Config{AllowOrigins: cfg.Server.AllowOrigins}, assistant, store)

	// Graceful shutdown on Ctrl+C / SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}()

	log.Info("Teachi server listening", "addr", cfg.Addr(), "version", Version)
	if err := server.Start(cfg.Addr()); err != nil {
		log.Info("server stopped", "reason", err)
	}
}
