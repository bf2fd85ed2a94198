// Package httpapi exposes the allocator simulation as a JSON HTTP service.
//
// The route table mirrors what visualization front ends consume:
//
//	POST /init                 {"total_size": N}
//	POST /allocate             {"size": N, "strategy": "first|best|worst"}
//	POST /deallocate           {"block_id": N}
//	POST /deallocate_multiple  {"block_ids": [N, ...]}
//	GET  /snapshot
//
// Every successful response carries the snapshot object
// {"total_size": N, "blocks": [{"id","size","free","start_address"}, ...]}
// with blocks in ascending address order; /allocate adds "block_id".
// Errors are {"error": "..."} with a status per kind: 400 for invalid
// input, 404 for an unknown block, 409 for no-fit and already-free.
package httpapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/memkit/memkit/mem/alloc"
)

// Server owns at most one arena at a time. The instance is created by
// /init and replaced by subsequent /init calls; it is never a package
// global. The core is single-threaded, so a single mutex serializes all
// access to it.
type Server struct {
	mu    sync.Mutex
	arena *alloc.Arena
	log   *slog.Logger
}

func NewServer(log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{log: log}
}

// Handler returns the route table wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /init", s.handleInit)
	mux.HandleFunc("POST /allocate", s.handleAllocate)
	mux.HandleFunc("POST /deallocate", s.handleDeallocate)
	mux.HandleFunc("POST /deallocate_multiple", s.handleDeallocateMultiple)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	return s.withLogging(mux)
}

type initRequest struct {
	TotalSize int `json:"total_size"`
}

type allocateRequest struct {
	Size     int    `json:"size"`
	Strategy string `json:"strategy"`
}

type allocateResponse struct {
	BlockID int `json:"block_id"`
	alloc.Snapshot
}

type deallocateRequest struct {
	BlockID int `json:"block_id"`
}

type deallocateMultipleRequest struct {
	BlockIDs []int `json:"block_ids"`
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if !s.decode(w, r, &req) {
		return
	}

	a, err := alloc.New(req.TotalSize)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	s.arena = a
	snap := a.Snapshot()
	s.mu.Unlock()

	s.log.Info("arena initialized", "total_size", req.TotalSize)
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if !s.decode(w, r, &req) {
		return
	}
	strat, err := alloc.ParseStrategy(req.Strategy)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.arena == nil {
		s.writeError(w, errNotInitialized)
		return
	}
	id, err := s.arena.Alloc(req.Size, strat)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, allocateResponse{BlockID: id, Snapshot: s.arena.Snapshot()})
}

func (s *Server) handleDeallocate(w http.ResponseWriter, r *http.Request) {
	var req deallocateRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.arena == nil {
		s.writeError(w, errNotInitialized)
		return
	}
	if err := s.arena.Free(req.BlockID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.arena.Snapshot())
}

// handleDeallocateMultiple frees a list of blocks in order. The batch is a
// plain loop over single deallocations; a failure stops the loop and
// reports which id failed, leaving earlier frees in place.
func (s *Server) handleDeallocateMultiple(w http.ResponseWriter, r *http.Request) {
	var req deallocateMultipleRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.BlockIDs) == 0 {
		s.writeErrorStatus(w, http.StatusBadRequest, "block_ids must be a non-empty list")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.arena == nil {
		s.writeError(w, errNotInitialized)
		return
	}
	for _, id := range req.BlockIDs {
		if err := s.arena.Free(id); err != nil {
			s.writeError(w, fmt.Errorf("block %d: %w", id, err))
			return
		}
	}
	s.writeJSON(w, http.StatusOK, s.arena.Snapshot())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.arena == nil {
		s.writeError(w, errNotInitialized)
		return
	}
	s.writeJSON(w, http.StatusOK, s.arena.Snapshot())
}

var errNotInitialized = errors.New("httpapi: memory not initialized")

// errStatus maps core error kinds to HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, alloc.ErrUnknownBlock):
		return http.StatusNotFound
	case errors.Is(err, alloc.ErrNoFit), errors.Is(err, alloc.ErrAlreadyFree):
		return http.StatusConflict
	default:
		// ErrBadSize, ErrBadStrategy, not-initialized, malformed bodies.
		return http.StatusBadRequest
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeErrorStatus(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeErrorStatus(w, errStatus(err), err.Error())
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "error", err)
	}
}

// withLogging tags each request with an id and logs method, path, status
// and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
