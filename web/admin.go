package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shelfline/avail"
)

// logView is the wire representation of a persisted log entry.
type logView struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	ProductID *uuid.UUID     `json:"product_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// handleStats reports catalog counters for the admin dashboard.
func (srv *Server) handleStats(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	count, err := srv.editor.ProductCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "counting products failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int32{"products": count})
}

// handleLogs lists the persisted log entries.
func (srv *Server) handleLogs(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	logs, err := srv.editor.Logs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "fetching logs failed")
		return
	}

	views := make([]logView, len(logs))
	for i, entry := range logs {
		views[i] = logView{
			Timestamp: entry.Timestamp,
			Level:     entry.Level,
			Message:   entry.Message,
			ProductID: entry.ProductID,
			Context:   entry.Context,
		}
	}
	writeJSON(w, http.StatusOK, views)
}

// handleSetColumns updates the product columns shown by the dashboard.
func (srv *Server) handleSetColumns(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	var columns []string
	if err := json.NewDecoder(req.Body).Decode(&columns); err != nil {
		writeError(w, http.StatusBadRequest, "invalid columns payload")
		return
	}

	if err := srv.editor.SetDisplayColumns(columns); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"columns": columns})
}
