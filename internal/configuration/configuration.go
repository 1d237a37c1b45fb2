// Package configuration handles the optional environment-file settings of
// the command line tool. All keys are optional; a missing file or key falls
// back to the documented default.
package configuration

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	// SystemConfigFile is consulted first, a local .env second.
	SystemConfigFile = "/etc/palfs.env"
	LocalConfigFile  = ".env"

	KeyStrictFile = "PALFS_STRICT_FILE"
	KeyLogLevel   = "PALFS_LOG_LEVEL"
	KeyNoColor    = "PALFS_NO_COLOR"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Settings are the resolved tool settings.
type Settings struct {
	// StrictFile selects the POSIX regular-file predicate for the classify
	// command instead of the historical existence probe.
	StrictFile bool

	LogLevel slog.Level
	NoColor  bool
}

// Handler reads and resolves configuration maps.
type Handler struct {
	genericHandler genericConfigProvider
}

// NewHandler returns a [Handler] using the given provider.
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		genericHandler: genericHandler,
	}
}

// LoadSettings reads the given environment files, skipping those that do not
// exist, and resolves them into [Settings]. Later files win over earlier ones.
func (c *Handler) LoadSettings(filenames ...string) (Settings, error) {
	settings := Settings{
		LogLevel: slog.LevelInfo,
	}

	existing := make([]string, 0, len(filenames))
	for _, name := range filenames {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}

	if len(existing) == 0 {
		return settings, nil
	}

	envMap, err := c.genericHandler.Read(existing...)
	if err != nil {
		return settings, err
	}

	settings.StrictFile = c.MapKeyToBool(envMap, KeyStrictFile)
	settings.NoColor = c.MapKeyToBool(envMap, KeyNoColor)

	if level := c.MapKeyToString(envMap, KeyLogLevel); level != "" {
		if err := settings.LogLevel.UnmarshalText([]byte(level)); err != nil {
			settings.LogLevel = slog.LevelInfo
		}
	}

	return settings, nil
}

// MapKeyToString returns an element of a string map or "" if not existing.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns an integer element of a string map (-1 if empty or invalid).
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToBool returns a boolean element of a string map (false if empty or invalid).
func (c *Handler) MapKeyToBool(envMap map[string]string, key string) bool {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}

	return boolValue
}
