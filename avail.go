// Package avail provides a product availability editor service with session-based
// admin access and SQLite database storage. It is designed to be decoupled from any
// particular HTTP surface and provides methods to load handlers for building
// dashboards and APIs over an organization's product catalog.
//
// The core functionality includes:
//   - Organization-scoped product catalog with daily availability windows
//   - Change-only availability saves that touch just the editable columns
//   - TTL-cached product listing invalidated on save
//   - Admin login with expiring sessions
//   - SQLite database storage for products, settings, and structured logs
package avail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shelfline/avail/domain"
	"github.com/shelfline/avail/listener"
)

const (
	// DefaultSessionTTL is how long a login session stays valid.
	DefaultSessionTTL = 5 * time.Minute
	// DefaultCacheTTL is how long a fetched product listing is served from cache.
	DefaultCacheTTL = 300 * time.Second
)

// Repository defines the methods consumed by the editor to interact with the storage backend.
// It provides an abstraction layer for all database operations including product storage,
// application settings, and logging.
type Repository interface {
	domain.ProductRepository
	domain.LogRepository
	domain.SettingsRepository
	Close() error
}

// Editor is the main struct that orchestrates all editor functionality including product
// fetching and saving, session management, caching, and log persistence. It serves as the
// central coordinator for the avail service.
type Editor struct {
	ConfigDir      string                        // The configuration directory (holds the config file, database, and log file)
	Config         *Config                       // The editor configuration
	Repo           Repository                    // DB Repository Interface
	Logger         *slog.Logger                  // Console logger
	DBWriteChannel chan *domain.Log              // DB Write Channel
	OnLog          func(log *domain.Log) error   // Function to be ran on each persisted log - used by embedding applications
	Addr           string                        // IP Address the service is bound to
	Port           string                        // Port the service is bound to
	OrganizationID uuid.UUID                     // Organization whose products are edited
	Sessions       *SessionStore                 // Active login sessions
	cache          *productCache                 // TTL cache for the product listing
	adminUsername  string                        // Configured admin username
	adminPassword  string                        // Configured admin password
	server         *http.Server                  // HTTP server, set once Serve is called
}

// New creates a new Editor instance with default configuration and applies any provided options.
// It initializes the database write channel, session store, product cache, and default
// admin credentials.
//
// Parameters:
//   - options: Variadic list of option functions to configure the editor
//
// Returns:
//   - *Editor: Configured editor instance
//   - error: Configuration error if any option fails
func New(options ...func(*Editor) error) (*Editor, error) {
	editor := &Editor{
		Logger:         slog.Default(),
		DBWriteChannel: make(chan *domain.Log, 10),
		Sessions:       NewSessionStore(DefaultSessionTTL),
		cache:          newProductCache(DefaultCacheTTL),
		adminUsername:  "admin",
		adminPassword:  "admin1234",
	}
	err := editor.WithOptions(options...)
	if err != nil {
		return nil, err
	}
	return editor, nil
}

// WriteToDB drains the DB write channel, persisting each log entry and invoking the
// optional log handler. It runs until the channel is closed.
func (editor *Editor) WriteToDB() {
	for logEntry := range editor.DBWriteChannel {
		if editor.Repo != nil {
			err := editor.Repo.InsertLog(logEntry)
			if err != nil {
				editor.Logger.Error("persisting log entry", "error", err)
			}
		}
		if editor.OnLog != nil {
			if err := editor.OnLog(logEntry); err != nil {
				editor.Logger.Error("running log handler", "error", err)
			}
		}
	}
}

// WriteLog creates a structured log entry, echoes it to the console logger, and enqueues
// it for persistence. Level should be one of DEBUG, INFO, WARN, ERROR, or FATAL.
func (editor *Editor) WriteLog(level string, message string, options ...func(log *domain.Log) error) error {
	switch level {
	case "DEBUG":
	case "INFO":
	case "WARN":
	case "ERROR":
	case "FATAL":
	default:
		return fmt.Errorf("level should be either: debug, info, warn, error, fatal")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating new uuid : %w", err)
	}
	logEntry := &domain.Log{
		ID:        id,
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
	for _, option := range options {
		err := option(logEntry)
		if err != nil {
			return fmt.Errorf("applying log option : %w", err)
		}
	}
	editor.Logger.Log(context.Background(), slogLevel(level), message)
	editor.DBWriteChannel <- logEntry
	return nil
}

// slogLevel maps a persisted log level to its slog equivalent.
func slogLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR", "FATAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logs returns the persisted log entries.
func (editor *Editor) Logs() ([]*domain.Log, error) {
	logs, err := editor.Repo.GetLogs()
	if err != nil {
		return nil, fmt.Errorf("fetching logs : %w", err)
	}
	return logs, nil
}

// displayableColumns are the product fields the dashboard can show.
var displayableColumns = map[string]bool{
	"code":           true,
	"name":           true,
	"available_from": true,
	"available_to":   true,
	"allow_negative": true,
	"updated_at":     true,
}

// SetDisplayColumns updates the product columns shown by the dashboard. Only known
// product fields are accepted; an empty set is allowed.
func (editor *Editor) SetDisplayColumns(columns []string) error {
	for _, column := range columns {
		if !displayableColumns[column] {
			return fmt.Errorf("unknown display column %q", column)
		}
	}
	if err := editor.Repo.SetDisplayColumns(columns); err != nil {
		return fmt.Errorf("storing display columns : %w", err)
	}
	editor.WriteLog("INFO", fmt.Sprintf("Display columns set to %v", columns))
	return nil
}

// SyncOrganization reconciles the configured organization with the one persisted in the
// app settings. A configured organization wins and is written through; with none
// configured, the stored organization is adopted.
func (editor *Editor) SyncOrganization() error {
	if editor.Repo == nil {
		return fmt.Errorf("editor has no repo")
	}
	if editor.OrganizationID == uuid.Nil {
		orgID, err := editor.Repo.GetOrganization()
		if err != nil {
			return fmt.Errorf("adopting stored organization : %w", err)
		}
		editor.OrganizationID = orgID
		return nil
	}
	if err := editor.Repo.SetOrganization(editor.OrganizationID); err != nil {
		return fmt.Errorf("storing configured organization : %w", err)
	}
	return nil
}

// GetListener binds a TCP listener on address:port, wrapped to survive recoverable
// accept errors.
func (editor *Editor) GetListener(address string, port string) (net.Listener, error) {
	rawListener, err := net.Listen("tcp", fmt.Sprintf("%s:%s", address, port))
	if err != nil {
		return nil, fmt.Errorf("setting up listener on %s:%s : %w", address, port, err)
	}
	editor.Addr = address
	editor.Port = port
	editor.WriteLog("INFO", fmt.Sprintf("Avail service started on %s:%s", address, port))
	return listener.NewResilientListener(rawListener), nil
}

// Serve starts the DB write pump and serves the given handler on the listener.
// It blocks until the server stops.
func (editor *Editor) Serve(l net.Listener, handler http.Handler) error {
	go editor.WriteToDB()
	editor.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return editor.server.Serve(l)
}

// Close shuts down the HTTP server and the repository.
func (editor *Editor) Close() {
	if editor.server != nil {
		editor.server.Close()
	}
	if editor.Repo != nil {
		editor.Repo.Close()
	}
}
