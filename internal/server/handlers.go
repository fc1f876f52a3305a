package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/oracle/internal/types"
)

// handleSearch runs one search through the pipeline.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		s.errorResponse(w, http.StatusBadRequest, "query is required")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.searchTimeout)
	defer cancel()

	resp, err := s.searcher.Run(ctx, &req)
	if err != nil {
		log.Printf("Search failed for query %q: %v", req.Query, err)
		s.errorResponse(w, http.StatusInternalServerError, userMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
