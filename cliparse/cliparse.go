package cliparse

import (
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"3318"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	DatabaseType   string   `env:"DATABASE_TYPE" envDefault:"sqlite"`
	StatsDays      int      `env:"STATS_DAYS" envDefault:"30"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LogFormat      string   `env:"LOG_FORMAT" envDefault:"text"`
}

// DefaultSQLiteURL is used when DATABASE_TYPE is sqlite and no URL is given
const DefaultSQLiteURL = "file:standup.db"

// ParseFlags builds the config from defaults, the .env file, the process
// environment and CLI flags, in increasing precedence.
func ParseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("standup-spinner", flag.ContinueOnError)

	envFile := fs.String("env", ".env", "Path to a .env file (ignored if missing)")
	port := fs.Int("p", 0, "Server port")
	databaseURL := fs.String("d", "", "Database URL")
	databaseType := fs.String("t", "", "Database type (sqlite or postgres)")
	statsDays := fs.Int("days", 0, "Default stats window in days")
	origins := fs.String("origins", "", "Comma-separated allowed CORS origins")
	logFormat := fs.String("log", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	environment, err := loadEnvironment(*envFile)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	// Only flags given on the command line override
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = *port
		case "d":
			cfg.DatabaseURL = *databaseURL
		case "t":
			cfg.DatabaseType = *databaseType
		case "days":
			cfg.StatsDays = *statsDays
		case "origins":
			cfg.AllowedOrigins = splitList(*origins)
		case "log":
			cfg.LogFormat = *logFormat
		}
	})

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadEnvironment merges the .env file under the process environment
func loadEnvironment(path string) (map[string]string, error) {
	environment := map[string]string{}

	if path != "" {
		fileVars, err := godotenv.Read(path)
		switch {
		case err == nil:
			maps.Copy(environment, fileVars)
		case errors.Is(err, iofs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}

	maps.Copy(environment, env.ToMap(os.Environ()))
	return environment, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.DatabaseType {
	case "sqlite":
		if c.DatabaseURL == "" {
			c.DatabaseURL = DefaultSQLiteURL
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}

	if c.StatsDays < 1 || c.StatsDays > 3650 {
		return fmt.Errorf("stats window must be between 1 and 3650 days, got %d", c.StatsDays)
	}

	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
