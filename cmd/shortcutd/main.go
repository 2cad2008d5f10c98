// shortcutd is the voice-shortcut companion: it registers a global hotkey
// and posts a shortcut turn to a running Teachi server on every press, so
// the teacher can talk to the tutor from any application.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vision-27/Teachi/internal/input"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	serverURL   = flag.String("server", "http://localhost:8000", "Teachi server base URL")
	hotkeyStr   = flag.String("hotkey", "ctrl+shift+space", "Global hotkey that triggers a voice shortcut")
	lessonID    = flag.String("lesson", "", "Current lesson id sent with each shortcut")
	showVersion = flag.Bool("version", false, "Show version information")
)

type shortcutRequest struct {
	LessonID string `json:"lesson_id"`
}

type shortcutResponse struct {
	Response string `json:"response"`
	LessonID string `json:"lesson_id"`
	Action   string `json:"action"`
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Teachi shortcutd v%s\n", Version)
		fmt.Printf("  Commit:  %s\n", GitCommit)
		fmt.Printf("  Built:   %s\n", BuildTime)
		os.Exit(0)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Long timeout: a shortcut turn includes listening and inference
	client := &http.Client{Timeout: 2 * time.Minute}

	mgr := input.NewHotkeyManager(func() {
		log.Info("shortcut triggered, listening")
		result, err := postShortcut(client, *serverURL, *lessonID)
		if err != nil {
			log.Error("shortcut turn failed", "error", err)
			return
		}
		log.Info("shortcut result", "action", result.Action, "lesson", result.LessonID)
		fmt.Println(result.Response)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mgr.Start(ctx, *hotkeyStr); err != nil {
		log.Error("failed to register hotkey", "error", err)
		os.Exit(1)
	}
	defer mgr.Stop()

	log.Info("shortcut daemon ready", "hotkey", *hotkeyStr, "server", *serverURL)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("exiting")
}

// postShortcut runs one shortcut turn against the server
func postShortcut(client *http.Client, baseURL, lessonID string) (*shortcutResponse, error) {
	body, err := json.Marshal(shortcutRequest{LessonID: lessonID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(baseURL+"/shortcut", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var result shortcutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid server response: %w", err)
	}
	return &result, nil
}
