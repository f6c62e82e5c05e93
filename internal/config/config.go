// Package config reads server settings from flags, falling back to
// CHESS_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/bot"
	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr          string
	AllowOrigins  string
	SearchDepth   int
	SearchTimeout time.Duration
	LogLevel      log.Level
}

// Load parses args (normally os.Args[1:]).
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	var envErrs []error
	depthDefault, err := getenvInt("CHESS_SEARCH_DEPTH", bot.DefaultDepth)
	envErrs = append(envErrs, err)
	timeoutDefault, err := getenvDuration("CHESS_SEARCH_TIMEOUT", 10*time.Second)
	envErrs = append(envErrs, err)
	if err := errors.Join(envErrs...); err != nil {
		return Config{}, err
	}

	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	depth := fs.Int("search-depth", depthDefault, "minimax depth in plies")
	timeout := fs.Duration("search-timeout", timeoutDefault, "time budget for one engine move")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "trace|debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Addr:          *addr,
		AllowOrigins:  *origins,
		SearchDepth:   *depth,
		SearchTimeout: *timeout,
		LogLevel:      lvl,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	if c.SearchDepth < 1 {
		errs = append(errs, fmt.Errorf("search depth %d: must be at least 1", c.SearchDepth))
	}
	if c.SearchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("search timeout %s: must be positive", c.SearchTimeout))
	}
	return errors.Join(errs...)
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s=%q: not an integer", key, v)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s=%q: not a duration", key, v)
	}
	return d, nil
}
