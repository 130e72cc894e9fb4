// apps/go-solver/internal/config/config.go
//
// Process configuration.
// Values come from the environment (optionally a .env file, loaded by main)
// with defaults suitable for local runs. CLI flags override them.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is the resolved process configuration.
type Config struct {
	WordlistPath string   // WORDLIST_PATH
	DBPath       string   // SOLVER_DB; empty disables history
	Openers      []string // SOLVER_OPENERS, comma separated; nil means the built-in openers
	ForcedLoss   string   // SOLVER_FORCED_LOSS
	Seed         uint64   // SOLVER_SEED
	HasSeed      bool
	Picker       string // SIM_PICKER: "random" or "daily"
	DailySalt    string // DAILY_SALT

	StatusAddr        string        // STATUS_ADDR; empty disables the status API
	JWTSecret         string        // JWT_SECRET
	JWTExpires        time.Duration // JWT_EXPIRES_HOURS
	AdminPasswordHash string        // ADMIN_PASSWORD_HASH

	LogLevel  string // LOG_LEVEL
	LogFormat string // LOG_FORMAT: "json" or "console"
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	c := Config{
		WordlistPath:      getEnv("WORDLIST_PATH", "./data/wordlist.txt"),
		DBPath:            getEnv("SOLVER_DB", "./data/solver.db"),
		Openers:           splitList(os.Getenv("SOLVER_OPENERS")),
		ForcedLoss:        getEnv("SOLVER_FORCED_LOSS", "FORCE"),
		Picker:            getEnv("SIM_PICKER", "random"),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
		StatusAddr:        os.Getenv("STATUS_ADDR"),
		JWTSecret:         getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpires:        12 * time.Hour,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}
	if v := os.Getenv("SOLVER_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("SOLVER_SEED: %w", err)
		}
		c.Seed, c.HasSeed = n, true
	}
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c, fmt.Errorf("JWT_EXPIRES_HOURS: invalid value %q", v)
		}
		c.JWTExpires = time.Duration(n) * time.Hour
	}
	switch c.Picker {
	case "random", "daily":
	default:
		return c, fmt.Errorf("SIM_PICKER: unknown picker %q", c.Picker)
	}
	return c, nil
}

// SetupLogging applies LogLevel and LogFormat to the global zerolog logger.
func (c Config) SetupLogging() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", c.LogLevel).Msg("unknown LOG_LEVEL; keeping default")
	}
	if c.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
