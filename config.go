package avail

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the editor configuration, read from the config directory and
// overridable through AVAIL_-prefixed environment variables.
type Config struct {
	viper          *viper.Viper
	ConfigDir      string `mapstructure:"config_dir"`      // Current config dir
	DatabaseFile   string `mapstructure:"database_file"`   // SQLite database file name, relative to the config dir
	OrganizationID string `mapstructure:"organization_id"` // Organization whose products are edited
	AdminUsername  string `mapstructure:"admin_username"`  // Admin login username
	AdminPassword  string `mapstructure:"admin_password"`  // Admin login password
	SessionMinutes int    `mapstructure:"session_minutes"` // Login session lifetime in minutes
	CacheSeconds   int    `mapstructure:"cache_seconds"`   // Product listing cache lifetime in seconds
}

// SetOrganization updates the configured organization and rewrites the config file.
func (cfg *Config) SetOrganization(orgID string) error {
	cfg.viper.Set("organization_id", orgID)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}
