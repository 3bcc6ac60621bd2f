package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"streambuddy/internal/logging"
	"streambuddy/internal/playback"
	"streambuddy/internal/rotation"
)

// EnvPrefix prefixes every environment variable LoadConfig reads.
const EnvPrefix = "STREAMBUDDY"

// Config holds all application configuration
type Config struct {
	Episodes string         `mapstructure:"episodes"`
	Bumpers  string         `mapstructure:"bumpers"`
	Overlay  OverlayConfig  `mapstructure:"overlay"`
	Player   PlayerConfig   `mapstructure:"player"`
	Rotation RotationConfig `mapstructure:"rotation"`
	Database DatabaseConfig `mapstructure:"database"`
	Status   StatusConfig   `mapstructure:"status"`
	LogLevel string         `mapstructure:"log_level"`

	// TestMode is set from the command line, not from configuration.
	TestMode bool `mapstructure:"-"`
}

// OverlayConfig locates the overlay files.
type OverlayConfig struct {
	LastFile    string `mapstructure:"last_file"`
	CurrentFile string `mapstructure:"current_file"`
	NextFile    string `mapstructure:"next_file"`
	CardFile    string `mapstructure:"card_file"`
	Greeting    string `mapstructure:"greeting"`
	Farewell    string `mapstructure:"farewell"`
}

// PlayerConfig configures the external player.
type PlayerConfig struct {
	Command        string        `mapstructure:"command"`
	TestCommand    string        `mapstructure:"test_command"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	TestDuration   time.Duration `mapstructure:"test_duration"`
	StallWarnAfter time.Duration `mapstructure:"stall_warn_after"`
}

// RotationConfig configures reload behavior.
type RotationConfig struct {
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	Resume        bool          `mapstructure:"resume"`
	Watch         bool          `mapstructure:"watch"`
}

// DatabaseConfig configures the play history.
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// StatusConfig configures the status API.
type StatusConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Port            string `mapstructure:"port"`
	LogHealthChecks bool   `mapstructure:"log_health_checks"`
}

// PlayerCommand returns the argv for the configured player, honoring
// TestMode.
func (c *Config) PlayerCommand() []string {
	if c.TestMode && strings.TrimSpace(c.Player.TestCommand) != "" {
		return playback.ParseCommand(c.Player.TestCommand)
	}
	return playback.ParseCommand(c.Player.Command)
}

// PlaybackOptions converts the player settings for the playback driver.
func (c *Config) PlaybackOptions() playback.Options {
	return playback.Options{
		PollInterval:   c.Player.PollInterval,
		TestDuration:   c.Player.TestDuration,
		StallWarnAfter: c.Player.StallWarnAfter,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("episodes", "./episodes")
	v.SetDefault("bumpers", "./bumpers")

	v.SetDefault("overlay.last_file", "./overlay/last.txt")
	v.SetDefault("overlay.current_file", "./overlay/current.txt")
	v.SetDefault("overlay.next_file", "./overlay/next.txt")
	v.SetDefault("overlay.card_file", "")
	v.SetDefault("overlay.greeting", rotation.DefaultGreeting)
	v.SetDefault("overlay.farewell", rotation.DefaultFarewell)

	v.SetDefault("player.command", strings.Join(playback.DefaultCommand, " "))
	v.SetDefault("player.test_command", "cvlc --play-and-exit --no-video-title-show --quiet")
	v.SetDefault("player.poll_interval", "500ms")
	v.SetDefault("player.test_duration", "5s")
	v.SetDefault("player.stall_warn_after", "30s")

	v.SetDefault("rotation.retry_interval", "30s")
	v.SetDefault("rotation.resume", false)
	v.SetDefault("rotation.watch", true)

	v.SetDefault("database.enabled", true)
	v.SetDefault("database.path", "./data/streambuddy.db")

	v.SetDefault("status.enabled", true)
	v.SetDefault("status.port", "8089")
	v.SetDefault("status.log_health_checks", false)

	v.SetDefault("log_level", "")
}

// LoadConfig reads configuration from the environment, the optional config
// file at path (or ./streambuddy.yaml when path is empty) and defaults, then
// validates it. An explicit path that cannot be read is an error.
func LoadConfig(path string) (*Config, error) {
	printBanner()
	logSystemInfo()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	section("CONFIGURATION")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("streambuddy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logging.Info("  No streambuddy.yaml found, using environment and defaults")
	} else {
		logging.Info("  Config file:         %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if config.LogLevel != "" {
		if level, ok := logging.ParseLevel(config.LogLevel); ok {
			logging.SetLevel(level)
		} else {
			logging.Warn("  Invalid log_level %q, keeping %s", config.LogLevel, logging.GetLevel())
		}
	}

	logConfig(&config)

	if err := config.resolve(); err != nil {
		return nil, err
	}
	return &config, nil
}

func logConfig(c *Config) {
	logging.Info("  EPISODES:              %s", c.Episodes)
	logging.Info("  BUMPERS:               %s", c.Bumpers)
	logging.Info("  OVERLAY_LAST_FILE:     %s", c.Overlay.LastFile)
	logging.Info("  OVERLAY_CURRENT_FILE:  %s", c.Overlay.CurrentFile)
	logging.Info("  OVERLAY_NEXT_FILE:     %s", c.Overlay.NextFile)
	logging.Info("  OVERLAY_CARD_FILE:     %s", valueOrDisabled(c.Overlay.CardFile))
	logging.Info("  PLAYER_COMMAND:        %s", c.Player.Command)
	logging.Info("  PLAYER_POLL_INTERVAL:  %v", c.Player.PollInterval)
	logging.Info("  RETRY_INTERVAL:        %v", c.Rotation.RetryInterval)
	logging.Info("  RESUME:                %v", c.Rotation.Resume)
	logging.Info("  WATCH:                 %v", c.Rotation.Watch)
	logging.Info("  DATABASE:              %s", valueOrDisabled(enabledValue(c.Database.Enabled, c.Database.Path)))
	logging.Info("  STATUS_PORT:           %s", valueOrDisabled(enabledValue(c.Status.Enabled, c.Status.Port)))
	logging.Info("  LOG_LEVEL:             %s", logging.GetLevel())
}

func valueOrDisabled(value string) string {
	if value == "" {
		return "DISABLED"
	}
	return value
}

func enabledValue(enabled bool, value string) string {
	if !enabled {
		return ""
	}
	return value
}

// resolve makes paths absolute and checks the filesystem.
func (c *Config) resolve() error {
	section("DIRECTORY SETUP")

	if c.Player.PollInterval <= 0 {
		return fmt.Errorf("player.poll_interval must be positive, got %v", c.Player.PollInterval)
	}
	if c.Player.TestDuration <= 0 {
		return fmt.Errorf("player.test_duration must be positive, got %v", c.Player.TestDuration)
	}
	if c.Rotation.RetryInterval <= 0 {
		return fmt.Errorf("rotation.retry_interval must be positive, got %v", c.Rotation.RetryInterval)
	}
	if len(playback.ParseCommand(c.Player.Command)) == 0 {
		return fmt.Errorf("player.command is empty")
	}
	if c.Status.Enabled {
		if port, err := strconv.Atoi(c.Status.Port); err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("status.port %q is not a valid port", c.Status.Port)
		}
	}

	var err error
	for _, p := range []struct {
		value *string
		name  string
	}{
		{&c.Episodes, "episodes"},
		{&c.Bumpers, "bumpers"},
		{&c.Overlay.LastFile, "overlay.last_file"},
		{&c.Overlay.CurrentFile, "overlay.current_file"},
		{&c.Overlay.NextFile, "overlay.next_file"},
		{&c.Overlay.CardFile, "overlay.card_file"},
		{&c.Database.Path, "database.path"},
	} {
		if *p.value == "" {
			continue
		}
		if *p.value, err = filepath.Abs(*p.value); err != nil {
			return fmt.Errorf("failed to resolve %s path: %w", p.name, err)
		}
	}

	for _, source := range []struct{ path, name string }{{c.Episodes, "episodes"}, {c.Bumpers, "bumpers"}} {
		if _, err := os.Stat(source.path); err != nil {
			return fmt.Errorf("%s source %s: %w", source.name, source.path, err)
		}
		logging.Info("  [OK] %-8s %s", source.name+":", source.path)
	}

	if c.Overlay.LastFile == "" && c.Overlay.CurrentFile == "" && c.Overlay.NextFile == "" {
		logging.Warn("  No overlay text files configured")
	}

	overlayDirs := map[string]bool{}
	for _, file := range []string{c.Overlay.LastFile, c.Overlay.CurrentFile, c.Overlay.NextFile, c.Overlay.CardFile} {
		if file != "" {
			overlayDirs[filepath.Dir(file)] = true
		}
	}
	for dir := range overlayDirs {
		if err := ensureDirectory(dir, "overlay"); err != nil {
			return fmt.Errorf("overlay directory error: %w", err)
		}
		if err := testWriteAccess(dir); err != nil {
			return fmt.Errorf("overlay directory %s is not writable: %w", dir, err)
		}
		logging.Info("  [OK] Overlay directory %s is writable", dir)
	}

	if c.Database.Enabled {
		dir := filepath.Dir(c.Database.Path)
		if err := ensureDirectory(dir, "database"); err != nil {
			logging.Warn("  Database directory issue: %v", err)
			c.Database.Enabled = false
		} else if err := testWriteAccess(dir); err != nil {
			logging.Warn("  Database directory %s is not writable: %v", dir, err)
			c.Database.Enabled = false
		} else {
			logging.Info("  [OK] Database directory is writable")
		}
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    History:       %s", enabledString(c.Database.Enabled))
	logging.Info("    Title card:    %s", enabledString(c.Overlay.CardFile != ""))
	logging.Info("    Status API:    %s", enabledString(c.Status.Enabled))
	logging.Info("    Folder watch:  %s", enabledString(c.Rotation.Watch))

	return nil
}
