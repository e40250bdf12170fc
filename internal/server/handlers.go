package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rshade/ecotray/internal/domain/decay"
	"github.com/rshade/ecotray/internal/domain/domainerr"
	"github.com/rshade/ecotray/internal/domain/lca"
	"github.com/rshade/ecotray/internal/domain/materials"
	"github.com/rshade/ecotray/internal/metrics"
	decaysvc "github.com/rshade/ecotray/internal/services/decay"
	"github.com/rshade/ecotray/internal/services/displacement"
	"github.com/rshade/ecotray/internal/services/ecoscore"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var errBadRequest = fmt.Errorf("malformed request body: %w", domainerr.ErrInvalidInput)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type decayRequest struct {
	MaterialID  materials.MaterialID  `json:"materialId"`
	Environment materials.Environment `json:"environment"`
	ElapsedDays float64               `json:"elapsedDays"`

	// Days, when set, requests a curve instead of a single point.
	Days []float64 `json:"days,omitempty"`
}

type decayResponse struct {
	MaterialID  materials.MaterialID  `json:"materialId"`
	Environment materials.Environment `json:"environment"`
	ElapsedDays float64               `json:"elapsedDays"`
	decay.Result
}

type curveResponse struct {
	MaterialID  materials.MaterialID  `json:"materialId"`
	Environment materials.Environment `json:"environment"`
	Points      []decaysvc.Point      `json:"points"`
}

type displacementRequest struct {
	Config                   lca.TrayConfiguration `json:"config"`
	LandfillFractionBaseline float64               `json:"landfillFractionBaseline"`
	CompostFractionScenario  float64               `json:"compostFractionScenario"`
	Context                  *lca.Context          `json:"context,omitempty"`
}

type ecoScoreRequest struct {
	Config                   lca.TrayConfiguration `json:"config"`
	LandfillFractionBaseline float64               `json:"landfillFractionBaseline"`
	CompostFractionScenario  float64               `json:"compostFractionScenario"`
	GridKWhPerTray           float64               `json:"gridKWhPerTray"`
	Context                  *lca.Context          `json:"context,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.current().catalog.Profiles())
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	id := materials.MaterialID(chi.URLParam(r, "id"))
	profile, err := s.current().catalog.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDecay(w http.ResponseWriter, r *http.Request) {
	var req decayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, metrics.OperationDecay, err)
		return
	}

	profile, err := s.current().catalog.Get(req.MaterialID)
	if err != nil {
		s.fail(w, r, metrics.OperationDecay, err)
		return
	}

	if len(req.Days) > 0 {
		points, err := decaysvc.Curve(profile, req.Environment, req.Days)
		if err != nil {
			s.fail(w, r, metrics.OperationDecay, err)
			return
		}
		s.recorder.Observe(metrics.OperationDecay, nil)
		writeJSON(w, http.StatusOK, curveResponse{
			MaterialID:  profile.ID,
			Environment: req.Environment,
			Points:      points,
		})
		return
	}

	res, err := decaysvc.EstimateLocalDecay(profile, req.Environment, req.ElapsedDays)
	if err != nil {
		s.fail(w, r, metrics.OperationDecay, err)
		return
	}
	s.recorder.Observe(metrics.OperationDecay, nil)
	writeJSON(w, http.StatusOK, decayResponse{
		MaterialID:  profile.ID,
		Environment: req.Environment,
		ElapsedDays: req.ElapsedDays,
		Result:      res,
	})
}

func (s *Server) handleDisplacement(w http.ResponseWriter, r *http.Request) {
	var req displacementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, metrics.OperationDisplacement, err)
		return
	}

	st := s.current()
	ctx, err := st.resolveContext(req.Context)
	if err != nil {
		s.fail(w, r, metrics.OperationDisplacement, err)
		return
	}
	if _, err := st.catalog.Get(req.Config.MaterialID); err != nil {
		s.fail(w, r, metrics.OperationDisplacement, err)
		return
	}
	if err := req.Config.Validate(); err != nil {
		s.fail(w, r, metrics.OperationDisplacement, err)
		return
	}

	out := displacement.ComputeMetrics(displacement.Inputs{
		Config:                   req.Config,
		Context:                  ctx,
		LandfillFractionBaseline: req.LandfillFractionBaseline,
		CompostFractionScenario:  req.CompostFractionScenario,
	})
	s.recorder.Observe(metrics.OperationDisplacement, nil)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleEcoScore(w http.ResponseWriter, r *http.Request) {
	var req ecoScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, metrics.OperationEcoScore, err)
		return
	}

	st := s.current()
	ctx, err := st.resolveContext(req.Context)
	if err != nil {
		s.fail(w, r, metrics.OperationEcoScore, err)
		return
	}

	res, err := st.calculator.Calculate(ecoscore.Inputs{
		Config:                   req.Config,
		Context:                  ctx,
		LandfillFractionBaseline: req.LandfillFractionBaseline,
		CompostFractionScenario:  req.CompostFractionScenario,
		GridKWhPerTray:           req.GridKWhPerTray,
	})
	if err != nil {
		s.fail(w, r, metrics.OperationEcoScore, err)
		return
	}
	s.recorder.Observe(metrics.OperationEcoScore, nil)
	s.recorder.ObserveScore(res.EcoScore.TotalScore)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.current().registry.List())
}

func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	st := s.current()
	name := chi.URLParam(r, "name")

	sc, err := st.registry.Get(name)
	if err != nil {
		s.fail(w, r, metrics.OperationScenario, err)
		return
	}
	rep, err := st.runner.Run(st.context, sc)
	if err != nil {
		s.fail(w, r, metrics.OperationScenario, err)
		return
	}

	s.recorder.Observe(metrics.OperationScenario, nil)
	s.recorder.ObserveScore(rep.Eco.EcoScore.TotalScore)
	s.logger.Info().
		Str("request_id", RequestIDFrom(r.Context())).
		Str("scenario", sc.Name).
		Str("material_id", string(sc.Config.MaterialID)).
		Str("evaluation_id", rep.EvaluationID).
		Float64("total_score", rep.Eco.EcoScore.TotalScore).
		Msg("Scenario evaluated")
	writeJSON(w, http.StatusOK, rep)
}

// resolveContext returns the request's context override, or the server's.
func (st *state) resolveContext(override *lca.Context) (lca.Context, error) {
	if override == nil {
		return st.context, nil
	}
	if err := override.Validate(); err != nil {
		return lca.Context{}, err
	}
	return *override, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	s.recorder.Observe(operation, err)
	s.writeError(w, r, err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("Request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: RequestIDFrom(r.Context())})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrUnresolvedReference):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
