package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("tracker-api", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("port", "", "HTTP listen port")
	fs.String("gin-mode", "", "gin mode (debug, release, test)")
	fs.String("db-driver", "", "database driver (postgres, mysql, sqlite)")
	fs.String("db-host", "", "database host")
	fs.String("db-port", "", "database port")
	fs.String("db-user", "", "database user")
	fs.String("db-password", "", "database password")
	fs.String("db-name", "", "database name")
	fs.String("db-path", "", "sqlite database file")
	fs.String("jwt-secret", "", "secret used to sign bearer tokens")
	fs.Duration("token-ttl", 0, "bearer token lifetime")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-format", "", "log format (text, json)")
	return fs
}

// applyFlags copies only the flags set on the command line.
func applyFlags(fs *pflag.FlagSet, cfg *Config) error {
	strs := map[string]*string{
		"port":        &cfg.Port,
		"gin-mode":    &cfg.GinMode,
		"db-driver":   &cfg.DBDriver,
		"db-host":     &cfg.DBHost,
		"db-port":     &cfg.DBPort,
		"db-user":     &cfg.DBUser,
		"db-password": &cfg.DBPassword,
		"db-name":     &cfg.DBName,
		"db-path":     &cfg.DBPath,
		"jwt-secret":  &cfg.JWTSecret,
		"log-level":   &cfg.LogLevel,
		"log-format":  &cfg.LogFormat,
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if dst, ok := strs[f.Name]; ok {
			*dst = f.Value.String()
			return
		}
		if f.Name == "token-ttl" {
			cfg.TokenTTL, err = fs.GetDuration("token-ttl")
			if err != nil {
				err = fmt.Errorf("flag --token-ttl: %w", err)
			}
		}
	})
	return err
}
