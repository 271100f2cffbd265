package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/log"
)

const (
	envHost            = "SNAKE_HOST"
	envSSHPort         = "SNAKE_SSH_PORT"
	envHTTPPort        = "SNAKE_HTTP_PORT"
	envPrivateKeyPath  = "SNAKE_PRIVATE_KEY_PATH"
	envDBPath          = "SNAKE_DB_PATH"
	envLogLevel        = "SNAKE_LOG_LEVEL"
	envLogFile         = "SNAKE_LOG_FILE"
	envBoardSize       = "SNAKE_BOARD_SIZE"
	envTickDuration    = "SNAKE_TICK"
	envAutopilotScript = "SNAKE_AUTOPILOT_SCRIPT"
	envMaxConnsPerIP   = "SNAKE_MAX_CONNECTIONS_PER_IP"
)

type Config struct {
	Host                string
	SSHPort             string
	HTTPPort            string
	PrivateKeyPath      string
	DBPath              string
	LogLevel            log.Level
	LogFile             string
	BoardSize           int
	TickDuration        time.Duration
	AutopilotScript     string
	MaxConnectionsPerIP int
}

func Default() Config {
	return Config{
		Host:                "0.0.0.0",
		SSHPort:             "6996",
		HTTPPort:            "8080",
		PrivateKeyPath:      ".ssh/id_ed25519",
		DBPath:              game.DefaultDBPath,
		LogLevel:            log.InfoLevel,
		BoardSize:           game.BoardSize,
		TickDuration:        game.GameTickDuration,
		MaxConnectionsPerIP: 2,
	}
}

// Load reads the environment on top of Default.
func Load() (Config, error) {
	cfg := Default()

	stringVar(&cfg.Host, envHost)
	stringVar(&cfg.SSHPort, envSSHPort)
	stringVar(&cfg.HTTPPort, envHTTPPort)
	stringVar(&cfg.PrivateKeyPath, envPrivateKeyPath)
	stringVar(&cfg.DBPath, envDBPath)
	stringVar(&cfg.LogFile, envLogFile)
	stringVar(&cfg.AutopilotScript, envAutopilotScript)

	if raw, ok := os.LookupEnv(envLogLevel); ok {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if err := positiveIntVar(&cfg.BoardSize, envBoardSize); err != nil {
		return cfg, err
	}
	if err := positiveIntVar(&cfg.MaxConnectionsPerIP, envMaxConnsPerIP); err != nil {
		return cfg, err
	}

	if raw, ok := os.LookupEnv(envTickDuration); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envTickDuration, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("%s: tick must be positive, got %s", envTickDuration, d)
		}
		cfg.TickDuration = d
	}

	return cfg, nil
}

func (c Config) SSHAddress() string {
	return c.Host + ":" + c.SSHPort
}

func (c Config) HTTPAddress() string {
	return c.Host + ":" + c.HTTPPort
}

func stringVar(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func positiveIntVar(dst *int, key string) error {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if v < 1 {
		return fmt.Errorf("%s: must be at least 1, got %d", key, v)
	}
	*dst = v
	return nil
}
