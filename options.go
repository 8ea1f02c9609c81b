package avail

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shelfline/avail/domain"
	"github.com/spf13/viper"
)

// defaultOrganizationID is the organization used when no configuration overrides it.
const defaultOrganizationID = "c4f3eed9-de25-4a7a-9664-7674e16b5bfd"

// WithOptions applies a series of configuration functions to the editor instance.
// Each option function can modify the editor configuration and return an error if it fails.
//
// Parameters:
//   - options: Variadic list of configuration functions
//
// Returns:
//   - error: First error encountered from any option function
func (editor *Editor) WithOptions(options ...func(*Editor) error) error {
	for _, option := range options {
		err := option(editor)
		if err != nil {
			return fmt.Errorf("applying option on avail : %w", err)
		}
	}
	return nil
}

// WithConfigDir configures the editor to use the specified configuration directory.
// It creates the directory if it doesn't exist and initializes the configuration file using Viper.
// Environment variables prefixed with AVAIL_ override file values, mirroring dotenv-style
// deployment configuration.
//
// Parameters:
//   - appConfigDir: Path to the configuration directory
//
// Returns:
//   - func(*Editor) error: Configuration function that sets up the config directory
func WithConfigDir(appConfigDir string) func(*Editor) error {
	return func(editor *Editor) error {
		_, err := os.ReadDir(appConfigDir)
		if err != nil {
			if os.IsNotExist(err) {
				log.Println("[*] creating config dir")
				err := os.MkdirAll(appConfigDir, 0700)
				if err != nil {
					return fmt.Errorf("creating config dir %s: %w", appConfigDir, err)
				}
			} else {
				return fmt.Errorf("checking if directory exists %s: %w", appConfigDir, err)
			}
		}
		// At this point, the directory exists or was created successfully
		editor.ConfigDir = appConfigDir

		// VIPER
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(appConfigDir)
		v.SetEnvPrefix("AVAIL")
		v.AutomaticEnv()
		v.SetDefault("database_file", "avail.db")
		v.SetDefault("organization_id", defaultOrganizationID)
		v.SetDefault("admin_username", "admin")
		v.SetDefault("admin_password", "admin1234")
		v.SetDefault("session_minutes", 5)
		v.SetDefault("cache_seconds", 300)
		err = v.ReadInConfig()
		if err != nil {
			// need to check if the error is config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				// Config file is not found
				err = v.SafeWriteConfig()
				if err != nil {
					return fmt.Errorf("writing config file : %w", err)
				}
			} else {
				return fmt.Errorf("reading config file : %w", err)
			}
		}
		if err := v.Unmarshal(&editor.Config); err != nil {
			return fmt.Errorf("unmarshalling config to struct : %w", err)
		}
		editor.Config.viper = v
		editor.Config.ConfigDir = appConfigDir

		// Rewrite entire file from struct
		err = v.WriteConfig()
		if err != nil {
			return fmt.Errorf("writing config after unmarshalling : %w", err)
		}

		orgID, err := uuid.Parse(editor.Config.OrganizationID)
		if err != nil {
			return fmt.Errorf("parsing configured organization %q : %w", editor.Config.OrganizationID, err)
		}
		editor.OrganizationID = orgID
		editor.adminUsername = editor.Config.AdminUsername
		editor.adminPassword = editor.Config.AdminPassword
		if editor.Config.SessionMinutes > 0 {
			editor.Sessions.SetTTL(time.Duration(editor.Config.SessionMinutes) * time.Minute)
		}
		if editor.Config.CacheSeconds > 0 {
			editor.cache.setTTL(time.Duration(editor.Config.CacheSeconds) * time.Second)
		}
		return nil
	}
}

// WithLogger sets the console logger used by the editor.
// A nil logger keeps the default.
func WithLogger(logger *slog.Logger) func(*Editor) error {
	return func(editor *Editor) error {
		if logger == nil {
			return nil
		}
		editor.Logger = logger
		return nil
	}
}

// WithRepo will take the Repository interface, replacing (and closing) any previous one,
// and reconcile the configured organization with the stored one.
func WithRepo(repo Repository) func(*Editor) error {
	return func(editor *Editor) error {
		// First we need to check if there is a repo
		if editor.Repo != nil {
			if err := editor.Repo.Close(); err != nil {
				return err
			}
			editor.Repo = nil
		}
		editor.Repo = repo
		err := editor.SyncOrganization()
		if err != nil {
			editor.WriteLog("INFO", err.Error())
		}
		return nil
	}
}

// WithCredentials overrides the admin login credentials.
func WithCredentials(username, password string) func(*Editor) error {
	return func(editor *Editor) error {
		if username == "" || password == "" {
			return errors.New("credentials cannot be empty")
		}
		editor.adminUsername = username
		editor.adminPassword = password
		return nil
	}
}

// WithSessionTTL overrides how long a login session stays valid.
func WithSessionTTL(ttl time.Duration) func(*Editor) error {
	return func(editor *Editor) error {
		if ttl <= 0 {
			return errors.New("session ttl must be positive")
		}
		editor.Sessions.SetTTL(ttl)
		return nil
	}
}

// WithCacheTTL overrides how long the product listing is served from cache.
func WithCacheTTL(ttl time.Duration) func(*Editor) error {
	return func(editor *Editor) error {
		if ttl <= 0 {
			return errors.New("cache ttl must be positive")
		}
		editor.cache.setTTL(ttl)
		return nil
	}
}

// WithLogHandler takes a handler function that will be executed on each persisted log
func WithLogHandler(handler func(log *domain.Log) error) func(*Editor) error {
	return func(editor *Editor) error {
		if editor.OnLog != nil {
			return errors.New("editor already has a log handler defined")
		}
		editor.OnLog = handler
		return nil
	}
}
