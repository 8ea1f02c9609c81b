// Package web provides the HTTP surface of the avail editor: the JSON API used by the
// dashboard, the dashboard page itself, and the export endpoints. It is a thin layer
// over the avail.Editor and holds no state of its own.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfline/avail"
	"github.com/shelfline/avail/domain"
)

// Server exposes the editor over HTTP.
type Server struct {
	editor *avail.Editor
}

// NewServer creates a Server for the given editor.
func NewServer(editor *avail.Editor) *Server {
	return &Server{editor: editor}
}

// Handler builds the route table. All responses are brotli-compressed for clients
// that accept it.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", srv.handleHealth)
	mux.HandleFunc("POST /api/login", srv.handleLogin)
	mux.HandleFunc("POST /api/logout", srv.requireSession(srv.handleLogout))
	mux.HandleFunc("GET /api/products", srv.requireSession(srv.handleProducts))
	mux.HandleFunc("POST /api/products/availability", srv.requireSession(srv.handleSaveAvailability))
	mux.HandleFunc("GET /api/export.csv", srv.requireSession(srv.handleExportCSV))
	mux.HandleFunc("POST /api/import", srv.requireSession(srv.handleImport))
	mux.HandleFunc("GET /api/stats", srv.requireSession(srv.handleStats))
	mux.HandleFunc("GET /api/logs", srv.requireSession(srv.handleLogs))
	mux.HandleFunc("PUT /api/settings/columns", srv.requireSession(srv.handleSetColumns))
	mux.HandleFunc("GET /export.xml", srv.handleFeed)
	mux.HandleFunc("GET /{$}", srv.handlePage)
	return Brotli(mux)
}

// productView is the wire representation of a product.
type productView struct {
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	AvailableFrom *domain.TimeOfDay `json:"available_from"`
	AvailableTo   *domain.TimeOfDay `json:"available_to"`
	AllowNegative bool              `json:"allow_negative"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func toProductView(product *domain.Product) productView {
	return productView{
		Code:          product.Code,
		Name:          product.Name,
		AvailableFrom: product.AvailableFrom,
		AvailableTo:   product.AvailableTo,
		AllowNegative: product.AllowNegative,
		UpdatedAt:     product.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// sessionToken extracts the bearer token from the Authorization header.
func sessionToken(req *http.Request) (uuid.UUID, error) {
	header := req.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return uuid.Nil, errors.New("missing bearer token")
	}
	token, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing bearer token : %w", err)
	}
	return token, nil
}

// requireSession wraps a handler so it only runs with a valid, unexpired session.
func (srv *Server) requireSession(next func(w http.ResponseWriter, req *http.Request, session *avail.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		token, err := sessionToken(req)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		session, err := srv.editor.Authenticate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "session invalid or expired")
			return
		}
		next(w, req, session)
	}
}

func (srv *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (srv *Server) handleLogin(w http.ResponseWriter, req *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login payload")
		return
	}

	session, err := srv.editor.Login(payload.Username, payload.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":    session.Token.String(),
		"username": session.Username,
	})
}

func (srv *Server) handleLogout(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	srv.editor.Logout(session.Token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (srv *Server) handleProducts(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	products, err := srv.editor.Products()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "fetching products failed")
		return
	}

	views := make([]productView, len(products))
	for i, product := range products {
		views[i] = toProductView(product)
	}
	writeJSON(w, http.StatusOK, views)
}

func (srv *Server) handleSaveAvailability(w http.ResponseWriter, req *http.Request, session *avail.Session) {
	var edits []domain.AvailabilityEdit
	if err := json.NewDecoder(req.Body).Decode(&edits); err != nil {
		writeError(w, http.StatusBadRequest, "invalid availability payload")
		return
	}

	updated, err := srv.editor.SaveAvailability(edits)
	if err != nil {
		if errors.Is(err, avail.ErrUnknownProductCode) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "saving availability failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}
