package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultInferenceURL = "https://api-inference.huggingface.co/models/meta-llama/Meta-Llama-3-8B-Instruct"

type Config struct {
	Discord struct {
		GuildID          string `yaml:"guild_id"`
		UnregisterOnExit bool   `yaml:"unregister_on_exit"`
	} `yaml:"discord"`
	Notes struct {
		Backend    string `yaml:"backend"`
		Dir        string `yaml:"dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"notes"`
	Inference struct {
		Provider       string `yaml:"provider"`
		URL            string `yaml:"url"`
		BaseURL        string `yaml:"base_url"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"inference"`
	LastQuestion struct {
		Backend   string `yaml:"backend"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"last_question"`
	Messages struct {
		ChunkSize int `yaml:"chunk_size"`
	} `yaml:"messages"`
}

// Secrets holds credentials that only ever come from the environment.
type Secrets struct {
	DiscordToken string
	HFToken      string
	RedisURL     string

	SurrealHost      string
	SurrealUser      string
	SurrealPass      string
	SurrealNamespace string
	SurrealDatabase  string
}

func defaults() *Config {
	config := &Config{}
	config.Discord.UnregisterOnExit = true
	config.Notes.Backend = "file"
	config.Notes.Dir = "."
	config.Notes.SQLitePath = "notes.db"
	config.Inference.Provider = "inference"
	config.Inference.URL = DefaultInferenceURL
	config.Inference.BaseURL = "https://router.huggingface.co/v1"
	config.Inference.Model = "meta-llama/Meta-Llama-3-8B-Instruct"
	config.Inference.TimeoutSeconds = 120
	config.LastQuestion.Backend = "memory"
	config.LastQuestion.KeyPrefix = "pocketbot"
	config.Messages.ChunkSize = 2000
	return config
}

// LoadConfig reads path on top of the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := defaults()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Notes.Backend {
	case "file", "sqlite", "surreal":
	default:
		return fmt.Errorf("unknown notes backend %q", c.Notes.Backend)
	}
	switch c.Inference.Provider {
	case "inference", "openai":
	default:
		return fmt.Errorf("unknown inference provider %q", c.Inference.Provider)
	}
	switch c.LastQuestion.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown last_question backend %q", c.LastQuestion.Backend)
	}
	if c.Messages.ChunkSize <= 0 {
		return fmt.Errorf("messages.chunk_size must be positive, got %d", c.Messages.ChunkSize)
	}
	return nil
}

// ReadSecrets loads .env (if present) and reads every secret from the
// environment without checking that any are set.
func ReadSecrets() *Secrets {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	s := &Secrets{
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		HFToken:          os.Getenv("HF_TOKEN"),
		RedisURL:         os.Getenv("REDIS_URL"),
		SurrealHost:      os.Getenv("SURREAL_DB_HOST"),
		SurrealUser:      os.Getenv("SURREAL_DB_USER"),
		SurrealPass:      os.Getenv("SURREAL_DB_PASS"),
		SurrealNamespace: os.Getenv("SURREAL_DB_NAMESPACE"),
		SurrealDatabase:  os.Getenv("SURREAL_DB_DATABASE"),
	}
	if s.SurrealNamespace == "" {
		s.SurrealNamespace = "pocketbot"
	}
	if s.SurrealDatabase == "" {
		s.SurrealDatabase = "notes"
	}
	return s
}

// LoadSecrets reads the secrets and checks the ones the configured backends
// need. A missing required variable is reported by name.
func (c *Config) LoadSecrets() (*Secrets, error) {
	s := ReadSecrets()

	if s.DiscordToken == "" {
		return nil, fmt.Errorf("missing required environment variable: DISCORD_TOKEN")
	}
	if s.HFToken == "" {
		return nil, fmt.Errorf("missing required environment variable: HF_TOKEN")
	}
	if c.LastQuestion.Backend == "redis" && s.RedisURL == "" {
		return nil, fmt.Errorf("missing required environment variable: REDIS_URL")
	}
	if c.Notes.Backend == "surreal" {
		if s.SurrealHost == "" {
			return nil, fmt.Errorf("missing required environment variable: SURREAL_DB_HOST")
		}
		if s.SurrealUser == "" {
			return nil, fmt.Errorf("missing required environment variable: SURREAL_DB_USER")
		}
		if s.SurrealPass == "" {
			return nil, fmt.Errorf("missing required environment variable: SURREAL_DB_PASS")
		}
	}
	return s, nil
}

// SurrealURL adds the websocket scheme and RPC path when the host is bare.
func (s *Secrets) SurrealURL() string {
	host := s.SurrealHost
	if strings.HasPrefix(host, "ws://") || strings.HasPrefix(host, "wss://") {
		return host
	}
	return "wss://" + host + "/rpc"
}
