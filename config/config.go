// Package config reads the game settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/minaorangina/maumau/protocol"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidPort    = errors.New("port must be between 1 and 65535")
	ErrInvalidBots    = errors.New("between 1 and 5 bots are required")
	ErrInvalidName    = errors.New("player names must not be empty")
	ErrInvalidWorkers = errors.New("at least one simulation worker is required")
)

// DefaultEnvFile is read by Load when it exists
const DefaultEnvFile = ".env"

// Config holds the settings shared by the command line and web front ends
type Config struct {
	Port              int      `env:"MAUMAU_PORT,default=8000"`
	HumanName         string   `env:"MAUMAU_HUMAN_NAME,default=You"`
	BotNames          []string `env:"MAUMAU_BOT_NAMES,default=Bot 1;Bot 2"`
	MaxBotTurns       int      `env:"MAUMAU_MAX_BOT_TURNS,default=200"`
	LogLevel          string   `env:"MAUMAU_LOG_LEVEL,default=info"`
	AllowedOrigins    []string `env:"MAUMAU_ALLOWED_ORIGINS,default=*"`
	SimulationWorkers int      `env:"MAUMAU_SIM_WORKERS,default=4"`
}

// Load reads envFile into the environment, without overriding variables
// that are already set, then decodes the environment into a Config.
// A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("could not read %s: %w", envFile, err)
		}
	}

	var cfg Config
	err := envdecode.Decode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("could not decode environment: %w", err)
	}

	for i, name := range cfg.BotNames {
		cfg.BotNames[i] = strings.TrimSpace(name)
	}
	cfg.HumanName = strings.TrimSpace(cfg.HumanName)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings make a playable table
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if len(c.BotNames) < 1 || len(c.BotNames) > 5 {
		return ErrInvalidBots
	}
	if c.HumanName == "" {
		return ErrInvalidName
	}
	for _, name := range c.BotNames {
		if name == "" {
			return ErrInvalidName
		}
	}
	if c.SimulationWorkers < 1 {
		return ErrInvalidWorkers
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Addr is the address the web server listens on
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Roster builds the seats for one table: the human first, then the bots.
// Every call hands out fresh player IDs.
func (c Config) Roster() []protocol.Player {
	players := []protocol.Player{{PlayerID: protocol.NewID(), Name: c.HumanName}}
	for _, name := range c.BotNames {
		players = append(players, protocol.Player{PlayerID: protocol.NewID(), Name: name, Bot: true})
	}
	return players
}

// NewLogger returns a logger at the configured level
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
