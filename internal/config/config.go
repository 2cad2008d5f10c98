package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Speech recognition settings
	Speech struct {
		// ModelPath is the path to the Vosk model directory.
		// The model must exist at startup; there is no download fallback.
		ModelPath string `yaml:"model_path"`
		// SampleRate is the microphone sample rate in Hz
		SampleRate int `yaml:"sample_rate"`
		// FrameSize is the capture frame size in samples
		FrameSize int `yaml:"frame_size"`
		// Timeout is the maximum wait for speech to start, in seconds
		Timeout float64 `yaml:"timeout"`
		// PhraseTimeLimit is the silence window that ends an utterance, in seconds
		PhraseTimeLimit float64 `yaml:"phrase_time_limit"`
		// Device is the capture device name ("" = default device)
		Device string `yaml:"device"`
	} `yaml:"speech"`

	// LLM settings
	LLM struct {
		// Command is the inference process to run, prompt on stdin
		Command string `yaml:"command"`
		// Args are passed to Command (typically "run <model>")
		Args []string `yaml:"args"`
	} `yaml:"llm"`

	// TTS settings
	TTS struct {
		// Command is the synthesis binary driven by the speech worker
		Command string `yaml:"command"`
		// Voice selects the synthesis voice
		Voice string `yaml:"voice"`
		// Rate is the speaking rate in words per minute
		Rate int `yaml:"rate"`
		// QueueSize is the speech job queue capacity
		QueueSize int `yaml:"queue_size"`
	} `yaml:"tts"`

	// Lessons settings
	Lessons struct {
		// File optionally overrides the built-in lesson data (YAML)
		File string `yaml:"file"`
	} `yaml:"lessons"`

	// Server settings
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		// AllowOrigins are the CORS origins of the classroom frontend
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"server"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Speech defaults
	cfg.Speech.ModelPath = "vosk-model-small-en-us-0.15"
	cfg.Speech.SampleRate = 16000
	cfg.Speech.FrameSize = 4096
	cfg.Speech.Timeout = 5.0
	cfg.Speech.PhraseTimeLimit = 5.0
	cfg.Speech.Device = ""

	// LLM defaults
	cfg.LLM.Command = "ollama"
	cfg.LLM.Args = []string{"run", "qwen2.5:7b"}

	// TTS defaults
	cfg.TTS.Command = "espeak-ng"
	cfg.TTS.Voice = "en-us"
	cfg.TTS.Rate = 172
	cfg.TTS.QueueSize = 32

	// Server defaults
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 8000
	cfg.Server.AllowOrigins = []string{"http://localhost:3000"}

	return cfg
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithFallback attempts to load configuration from multiple locations
// Priority: explicit path > ~/.teachirc > /etc/teachi/config.yaml
func LoadWithFallback(explicitPath string) (*Config, error) {
	// If explicit path is provided, use it
	if explicitPath != "" {
		return Load(explicitPath)
	}

	// Try user config (~/.teachirc)
	homeDir, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(homeDir, ".teachirc")
		if _, err := os.Stat(userConfigPath); err == nil {
			cfg, err := Load(userConfigPath)
			if err == nil {
				return cfg, nil
			}
		}
	}

	// Try system config (/etc/teachi/config.yaml)
	systemConfigPath := "/etc/teachi/config.yaml"
	if _, err := os.Stat(systemConfigPath); err == nil {
		cfg, err := Load(systemConfigPath)
		if err == nil {
			return cfg, nil
		}
	}

	// No config file found, return defaults
	return DefaultConfig(), nil
}

// Validate checks settings that must be usable at startup
func (c *Config) Validate() error {
	if c.Speech.ModelPath == "" {
		return fmt.Errorf("speech.model_path is required")
	}
	if info, err := os.Stat(c.Speech.ModelPath); err != nil || !info.IsDir() {
		return fmt.Errorf("speech model not found at %s", c.Speech.ModelPath)
	}
	if c.Speech.SampleRate <= 0 {
		return fmt.Errorf("speech.sample_rate must be positive, got %d", c.Speech.SampleRate)
	}
	if c.Speech.FrameSize <= 0 {
		return fmt.Errorf("speech.frame_size must be positive, got %d", c.Speech.FrameSize)
	}
	if c.LLM.Command == "" {
		return fmt.Errorf("llm.command is required")
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ListenTimeout returns the speech timeout as a duration
func (c *Config) ListenTimeout() time.Duration {
	return time.Duration(c.Speech.Timeout * float64(time.Second))
}

// PhraseLimit returns the phrase time limit as a duration
func (c *Config) PhraseLimit() time.Duration {
	return time.Duration(c.Speech.PhraseTimeLimit * float64(time.Second))
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
