package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/numthm/internal/book"
	"github.com/dgallion1/numthm/internal/envs"
	"github.com/dgallion1/numthm/internal/transform"
)

// transformRequest is the synchronous transform body: the book itself plus
// optional overrides of the configured numbering options.
type transformRequest struct {
	Book   *book.Book `json:"book"`
	Prefix *bool      `json:"prefix,omitempty"`
	Custom []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
		Emph string `json:"emph"`
	} `json:"custom_environments,omitempty"`
}

// handleTransform runs both passes inline and returns the transformed book.
// Small books go through here; large ones should use the async upload.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Book == nil {
		jsonError(w, "book is required", http.StatusBadRequest)
		return
	}

	prefix := s.cfg.PrefixNumbers
	if v := r.URL.Query().Get("prefix"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			prefix = b
		}
	}
	if req.Prefix != nil {
		prefix = *req.Prefix
	}

	custom, err := s.cfg.CustomEnvs()
	if err != nil {
		jsonError(w, "invalid CUSTOM_ENVS configuration: "+err.Error(), http.StatusInternalServerError)
		return
	}
	for _, c := range req.Custom {
		custom = append(custom, envs.Spec{Key: c.Key, Name: c.Name, Emph: c.Emph})
	}

	start := time.Now()
	res, err := transform.Run(req.Book, transform.Options{
		Prefix: prefix,
		Custom: custom,
	})
	if err != nil {
		// Duplicate environment keys make the registry ambiguous; nothing
		// is transformed on this path.
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.orchestrator.Stats().Record(time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"book":     req.Book,
		"summary":  res,
		"warnings": res.Warnings,
	})
}
