// Package api exposes a read-only HTTP surface for introspecting a running
// node: mempool size, the authoritative state root, and the node registry's
// current snapshot. It is a debug/status surface only — it never accepts a
// write that could affect consensus, and nothing it does participates in
// block production or vote aggregation.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/PlatariumNetwork/PlatariumCore/core"
)

// Server holds the dependencies the status routes read from. All fields are
// read through the core's own public, lock-guarded accessors; Server itself
// holds no mutable state.
type Server struct {
	Mempool  *core.Mempool
	Registry *core.NodeRegistry
	State    *core.State
	Logger   *log.Logger
}

// NewServer constructs a Server. A nil logger defaults to the standard
// logrus logger.
func NewServer(mempool *core.Mempool, registry *core.NodeRegistry, state *core.State, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{Mempool: mempool, Registry: registry, State: state, Logger: logger}
}

// correlationID stamps every request with a request-scoped uuid, logged
// alongside the method/path so operators can correlate a status query
// across log lines.
func (s *Server) correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		s.Logger.WithFields(log.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Info("status request")
		next.ServeHTTP(w, r)
	})
}

// Router builds the chi router for the status surface:
//
//	GET /status/mempool  — pending count and forced-inclusion queue length
//	GET /status/state    — current state root over the live state
//	GET /status/registry — every registered node's scoring snapshot
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.correlationID)

	r.Get("/status/mempool", s.handleMempool)
	r.Get("/status/state", s.handleState)
	r.Get("/status/registry", s.handleRegistry)
	return r
}

type mempoolStatus struct {
	Pending         int `json:"pending"`
	ForcedInclusion int `json:"forced_inclusion"`
}

func (s *Server) handleMempool(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, mempoolStatus{
		Pending:         s.Mempool.Len(),
		ForcedInclusion: len(s.Mempool.GetForcedInclusion()),
	})
}

type stateStatus struct {
	StateRoot string `json:"state_root"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	root := s.State.Snapshot().ComputeStateRoot()
	writeJSON(w, stateStatus{StateRoot: root})
}

type nodeStatus struct {
	NodeID     string `json:"node_id"`
	Stake      string `json:"stake"`
	Reputation uint64 `json:"reputation"`
	Load       uint64 `json:"load"`
	Status     string `json:"status"`
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	nodes := s.Registry.GetAll()
	out := make([]nodeStatus, len(nodes))
	for i, n := range nodes {
		status := "active"
		if n.Status == core.StatusSuspended {
			status = "suspended"
		}
		out[i] = nodeStatus{
			NodeID:     n.NodeID,
			Stake:      n.Stake.String(),
			Reputation: n.ReputationScore,
			Load:       n.LoadScore,
			Status:     status,
		}
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
