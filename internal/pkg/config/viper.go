package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
//
// Values come from the process environment, optionally layered over a .env
// file. The file is watched so corrected values (for example fixed SMTP
// credentials) are visible to later reads without a restart; the process
// environment always wins over file values.
type Viper struct {
	v *viper.Viper
}

// NewViperEnv builds a Config from the process environment plus an optional
// .env file at envFile. A missing file is not an error; a malformed one is.
func NewViperEnv(envFile string) (*Viper, error) {
	v := viper.New()
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")

		if _, err := os.Stat(envFile); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}

			v.OnConfigChange(func(_ fsnotify.Event) {
				if err := v.ReadInConfig(); err != nil {
					slog.Error("env file reload failed", "path", envFile, "err", err)
					return
				}
				slog.Info("env file reloaded", "path", envFile)
			})
			v.WatchConfig()
		}
	}

	return &Viper{v: v}, nil
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return strings.TrimSpace(vc.v.GetString(key))
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetArray returns the value for key split by commas, trimmed, empties dropped.
func (vc *Viper) GetArray(key string) []string {
	parts := strings.Split(vc.v.GetString(key), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetMinute returns the value for key as minutes.
func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	// Nothing to release; the watcher dies with the process.
	return nil
}
