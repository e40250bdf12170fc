// Package server exposes the scoring engine over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/materials
//	GET  /v1/materials/{id}
//	POST /v1/decay
//	POST /v1/displacement
//	POST /v1/ecoscore
//	GET  /v1/scenarios
//	POST /v1/scenarios/{name}/run
//	GET  /metrics
package server

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rshade/ecotray/internal/config"
	"github.com/rshade/ecotray/internal/domain/lca"
	"github.com/rshade/ecotray/internal/domain/materials"
	"github.com/rshade/ecotray/internal/metrics"
	"github.com/rshade/ecotray/internal/scenario"
	"github.com/rshade/ecotray/internal/services/ecoscore"
)

// state is everything derived from one Config. It is replaced wholesale on
// reload so a request never sees a half-applied config.
type state struct {
	context    lca.Context
	catalog    *materials.Catalog
	calculator *ecoscore.Calculator
	registry   *scenario.Registry
	runner     *scenario.Runner
}

func newState(cfg *config.Config) (*state, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	calculator, err := ecoscore.NewCalculatorWithPolicy(catalog, cfg.Policy)
	if err != nil {
		return nil, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return &state{
		context:    cfg.EffectiveContext(),
		catalog:    catalog,
		calculator: calculator,
		registry:   registry,
		runner:     scenario.NewRunnerWithCalculator(catalog, calculator),
	}, nil
}

// Server serves the HTTP API. It is safe for concurrent use.
type Server struct {
	logger   zerolog.Logger
	recorder *metrics.Recorder
	state    atomic.Pointer[state]
}

// New builds a server from cfg.
func New(cfg *config.Config, logger zerolog.Logger, recorder *metrics.Recorder) (*Server, error) {
	s := &Server{logger: logger, recorder: recorder}
	if err := s.Reload(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload swaps in cfg. On error the previous configuration stays active.
func (s *Server) Reload(cfg *config.Config) error {
	st, err := newState(cfg)
	if err != nil {
		return fmt.Errorf("server: apply config: %w", err)
	}
	s.state.Store(st)
	return nil
}

func (s *Server) current() *state {
	return s.state.Load()
}

// Routes returns the router with every endpoint mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", s.recorder.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/materials", s.handleListMaterials)
		r.Get("/materials/{id}", s.handleGetMaterial)
		r.Post("/decay", s.handleDecay)
		r.Post("/displacement", s.handleDisplacement)
		r.Post("/ecoscore", s.handleEcoScore)
		r.Get("/scenarios", s.handleListScenarios)
		r.Post("/scenarios/{name}/run", s.handleRunScenario)
	})

	return r
}

// Handler is Routes as a plain http.Handler.
func (s *Server) Handler() http.Handler {
	return s.Routes()
}
