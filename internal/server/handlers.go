package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/images", s.handleImages)
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(s.cfg.ImagesDir))))

	if s.cfg.SiteDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.SiteDir)))
	} else {
		mux.HandleFunc("GET /{$}", s.handlePage)
	}

	return corsMiddleware(mux)
}

// corsMiddleware allows any origin so a gallery page hosted elsewhere can use the listing
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleImages returns the sorted image names as a JSON array.
// An optional q parameter keeps names that fuzzy-match it.
func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	names := s.Images()

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		matched := fuzzy.FindFold(q, names)
		if matched == nil {
			matched = []string{}
		}
		names = matched
	}

	s.writeJSON(w, names)
}

func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
