package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"content_remixer/remixer"
	"content_remixer/store"
)

//go:embed web
var embeddedStatic embed.FS

const remixTimeout = 60 * time.Second

type Server struct {
	remixer     *remixer.Remixer
	snippets    *store.SnippetStore
	logger      *zap.Logger
	staticFS    http.Handler
	requireMode bool
}

func New(rx *remixer.Remixer, snippets *store.SnippetStore, requireMode bool, logger *zap.Logger) (*Server, error) {
	if rx == nil {
		return nil, errors.New("remixer required")
	}
	if snippets == nil {
		return nil, errors.New("snippet store required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		remixer:     rx,
		snippets:    snippets,
		logger:      logger,
		staticFS:    http.FileServer(http.FS(sub)),
		requireMode: requireMode,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/remix", s.handleRemix)
	mux.HandleFunc("/api/modes", s.handleModes)
	mux.HandleFunc("/api/snippets", s.handleSnippets)
	mux.HandleFunc("/api/snippets/", s.handleSnippetByID)
	mux.Handle("/", s.staticHandler())
	return corsMiddleware(s.logMiddleware(mux))
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upath := r.URL.Path
		if upath == "/" || !strings.HasPrefix(upath, "/api/") {
			if upath == "/" {
				r.URL.Path = "/index.html"
			}
			s.staticFS.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// --- Handlers ---

type remixReq struct {
	Text string `json:"text"`
	// Style and ContentType are two names for the same selector; tone
	// deployments send style, audience deployments send contentType.
	Style       string `json:"style"`
	ContentType string `json:"contentType"`
}

func (r remixReq) mode() string {
	if r.Style != "" {
		return r.Style
	}
	return r.ContentType
}

type remixResp struct {
	RemixedText string   `json:"remixedText"`
	ContentType string   `json:"contentType"`
	ParsedItems []string `json:"parsedItems,omitempty"`
}

type errorResp struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleRemix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req remixReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if s.requireMode && req.mode() == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), remixTimeout)
	defer cancel()

	result, err := s.remixer.Remix(ctx, req.Text, req.mode())
	if err != nil {
		s.logger.Error("remix failed", zap.String("mode", req.mode()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp{
			Error:   "Error processing your request",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, remixResp{
		RemixedText: result.RemixedText,
		ContentType: result.Mode,
		ParsedItems: result.ParsedItems,
	})
}

type modesResp struct {
	Modes []string `json:"modes"`
}

// handleModes tells the UI which mode buttons the active catalog offers.
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, modesResp{Modes: s.remixer.Modes()})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

// --- Middleware ---

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// corsMiddleware attaches permissive cross-origin headers to every response,
// error responses included, and answers pre-flight requests with an empty 200.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, X-Client-Info, Apikey, Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
