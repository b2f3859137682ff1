// Package config loads and validates the application configuration from
// a YAML file and YVE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credentials and the access allow-lists.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// AdminIDs may use admin-only commands such as /gid and /debug.
	AdminIDs []int64 `mapstructure:"admin_ids" validate:"required,min=1"`

	// GroupIDs is the allow-list of groups whose messages are counted.
	// Groups are seeded into the database at startup.
	GroupIDs []int64 `mapstructure:"group_ids" validate:"required,min=1"`

	// MessageTypes is the allow-list of message types that are counted.
	MessageTypes []string `mapstructure:"message_types" validate:"required,min=1"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// StatsConfig controls report rendering.
type StatsConfig struct {
	TopPostersLimit int `mapstructure:"top_posters_limit" validate:"min=1,max=50"`
}

// SchedulerConfig describes the scheduled background tasks.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig describes one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds the user-visible reply texts.
type MessagesConfig struct {
	Help          string `mapstructure:"help"`
	GroupOnly     string `mapstructure:"group_only"`
	NotAuthorized string `mapstructure:"not_authorized"`
	GeneralError  string `mapstructure:"general_error"`
	NoMessages    string `mapstructure:"no_messages"`
	DebugOn       string `mapstructure:"debug_on"`
	DebugOff      string `mapstructure:"debug_off"`
}

// LoadConfig reads the configuration file at path, applies defaults and
// environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("YVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("database.path", "yve.db")

	v.SetDefault("stats.top_posters_limit", 10)

	v.SetDefault("telegram.message_types", []string{"text", "photo", "video", "sticker", "voice", "document"})

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 0 3 * * *")
	v.SetDefault("scheduler.tasks.pager_eviction.enabled", true)
	v.SetDefault("scheduler.tasks.pager_eviction.schedule", "0 15 * * * *")

	v.SetDefault("messages.help",
		"Yve Hilfe:\n\n"+
			"/help - Zeigt dir diese Hilfe an.\n"+
			"/me - Na, wie viele Nachrichten hast du hier geschrieben?\n"+
			"/stats - Menschen sind fasziniert von Statistiken, also "+
			"erfährst du hiermit, wie viele Nachrichten hier bereits "+
			"geschrieben wurden.\n"+
			"/networkstats - Zeigt dir eine Gesamtstatistik aller Gruppen, "+
			"in denen Yve verwendet wird.")
	v.SetDefault("messages.group_only", "Der Befehl funktioniert nur in Gruppen.")
	v.SetDefault("messages.not_authorized", "Unauthorized access denied for %d.")
	v.SetDefault("messages.general_error", "Da ist etwas schiefgelaufen. Versuch es später noch einmal.")
	v.SetDefault("messages.no_messages", "Keine Nachrichten. Vielleicht ist die Gruppe nicht in der Datenbank?")
	v.SetDefault("messages.debug_on", "Debug Mode: On")
	v.SetDefault("messages.debug_off", "Debug Mode: Off")
}

// IsAdmin reports whether userID is in the configured admin list.
func (c *TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsAllowedGroup reports whether groupID is in the configured group allow-list.
func (c *TelegramConfig) IsAllowedGroup(groupID int64) bool {
	for _, id := range c.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// IsAllowedMessageType reports whether msgType is in the configured
// message-type allow-list.
func (c *TelegramConfig) IsAllowedMessageType(msgType string) bool {
	for _, t := range c.MessageTypes {
		if t == msgType {
			return true
		}
	}
	return false
}
