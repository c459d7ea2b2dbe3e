// Package config holds the runtime configuration of vchat. Values come
// from defaults, then VCHAT_* environment variables, then command-line
// flags.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/layout"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/state"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	// Theme is a built-in theme name or a path to a theme file.
	Theme    string
	DataFile string
	StateDir string
	LogFile  string
	Debug    bool
	// Notify sends desktop notifications for incoming messages.
	Notify bool
	// Bell rings the terminal bell when a movement is clamped.
	Bell bool
	// DoubleClick is the longest gap between two presses that still counts
	// as a double click.
	DoubleClick     time.Duration
	ContactsPercent int
}

const (
	EnvTheme           = "VCHAT_THEME"
	EnvDataFile        = "VCHAT_DATA"
	EnvStateDir        = "VCHAT_STATE_DIR"
	EnvLogFile         = "VCHAT_LOG_FILE"
	EnvDebug           = "VCHAT_DEBUG"
	EnvNotify          = "VCHAT_NOTIFY"
	EnvBell            = "VCHAT_BELL"
	EnvDoubleClick     = "VCHAT_DOUBLE_CLICK"
	EnvContactsPercent = "VCHAT_CONTACTS_PERCENT"
)

// DataFileName is the message fixture looked up in the state dir.
const DataFileName = "feed.yaml"

// DataFileIn returns the default message fixture path inside dir.
func DataFileIn(dir string) string { return filepath.Join(dir, DataFileName) }

// DefaultDoubleClick is the double-click threshold used unless configured.
const DefaultDoubleClick = 400 * time.Millisecond

// MaxDoubleClick bounds the double-click threshold.
const MaxDoubleClick = 2 * time.Second

// Default returns the configuration used when nothing is overridden. The
// state dir falls back to the current directory when there is no home.
func Default() Config {
	dir, err := state.DefaultDir()
	if err != nil {
		dir = ".vchat"
	}
	return Config{
		Theme:           theme.DefaultName,
		DataFile:        DataFileIn(dir),
		StateDir:        dir,
		LogFile:         logger.DefaultLogPath(),
		Bell:            true,
		DoubleClick:     DefaultDoubleClick,
		ContactsPercent: layout.DefaultContactsPercent,
	}
}

// ApplyEnv overrides c with the VCHAT_* variables found in environ, given
// in os.Environ form. Malformed values are configuration errors.
func (c *Config) ApplyEnv(environ []string) error {
	env := parseEnv(environ)

	c.Theme = envOrDefault(env, EnvTheme, c.Theme)
	c.StateDir = envOrDefault(env, EnvStateDir, c.StateDir)
	if strings.TrimSpace(env[EnvStateDir]) != "" {
		c.DataFile = DataFileIn(c.StateDir)
	}
	c.DataFile = envOrDefault(env, EnvDataFile, c.DataFile)
	c.LogFile = envOrDefault(env, EnvLogFile, c.LogFile)

	var err error
	if c.Debug, err = envOrBool(env, EnvDebug, c.Debug); err != nil {
		return err
	}
	if c.Notify, err = envOrBool(env, EnvNotify, c.Notify); err != nil {
		return err
	}
	if c.Bell, err = envOrBool(env, EnvBell, c.Bell); err != nil {
		return err
	}
	if c.ContactsPercent, err = envOrInt(env, EnvContactsPercent, c.ContactsPercent); err != nil {
		return err
	}
	if v, ok := env[EnvDoubleClick]; ok && strings.TrimSpace(v) != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return errors.ConfigInvalid(fmt.Sprintf("%s: %v", EnvDoubleClick, perr))
		}
		c.DoubleClick = d
	}
	return nil
}

// Validate checks the values that cannot be clamped silently.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Theme) == "" {
		return errors.ConfigInvalid("theme must not be empty")
	}
	if strings.TrimSpace(c.StateDir) == "" {
		return errors.ConfigInvalid("state dir must not be empty")
	}
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.ConfigInvalid("data file must not be empty")
	}
	if c.DoubleClick <= 0 || c.DoubleClick > MaxDoubleClick {
		return errors.ConfigInvalid(fmt.Sprintf("double-click threshold %s outside (0, %s]", c.DoubleClick, MaxDoubleClick))
	}
	if c.ContactsPercent < layout.MinContactsPercent || c.ContactsPercent > layout.MaxContactsPercent {
		return errors.ConfigInvalid(fmt.Sprintf("contacts width %d%% outside [%d, %d]",
			c.ContactsPercent, layout.MinContactsPercent, layout.MaxContactsPercent))
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		values[k] = v
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) (int, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, errors.ConfigInvalid(fmt.Sprintf("%s: %q is not a number", key, v))
	}
	return parsed, nil
}

func envOrBool(env map[string]string, key string, fallback bool) (bool, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback, errors.ConfigInvalid(fmt.Sprintf("%s: %q is not a boolean", key, v))
	}
	return parsed, nil
}
