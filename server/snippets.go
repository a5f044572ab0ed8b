package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"content_remixer/store"
)

type snippetCreateReq struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

type snippetUpdateReq struct {
	Content string `json:"content"`
}

type snippetListResp struct {
	Snippets []store.Snippet `json:"snippets"`
}

func (s *Server) handleSnippets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snippets, err := s.snippets.List(r.Context())
		if err != nil {
			s.logger.Error("list snippets failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Error processing your request")
			return
		}
		if snippets == nil {
			snippets = []store.Snippet{}
		}
		writeJSON(w, http.StatusOK, snippetListResp{Snippets: snippets})
	case http.MethodPost:
		var req snippetCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		sn, err := s.snippets.Insert(r.Context(), req.Content, req.ContentType)
		if err != nil {
			s.logger.Error("insert snippet failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Error processing your request")
			return
		}
		writeJSON(w, http.StatusCreated, sn)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleSnippetByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/snippets/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if sub == "html" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.renderSnippetHTML(w, r, id)
		return
	}
	if sub != "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req snippetUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		sn, err := s.snippets.Update(r.Context(), id, req.Content)
		if err != nil {
			s.snippetError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sn)
	case http.MethodDelete:
		if err := s.snippets.Delete(r.Context(), id); err != nil {
			s.snippetError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// renderSnippetHTML serves the snippet content converted from markdown,
// so the UI can show a formatted preview.
func (s *Server) renderSnippetHTML(w http.ResponseWriter, r *http.Request, id string) {
	sn, err := s.snippets.Get(r.Context(), id)
	if err != nil {
		s.snippetError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(sn.Content), &buf); err != nil {
		s.logger.Error("render snippet failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error processing your request")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) snippetError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Snippet not found")
		return
	}
	s.logger.Error("snippet operation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Error processing your request")
}
