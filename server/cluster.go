package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/capkmeans/geom"
	"github.com/katalvlaran/capkmeans/kmeans"
)

const headerRunID = "X-Run-ID"

var (
	errRateLimited   = errors.New("rate limit exceeded")
	errTooManyPoints = errors.New("too many points")
)

// ClusterRequest is the body of POST /v1/cluster. Zero-valued optional
// fields take the server defaults.
type ClusterRequest struct {
	Points        [][2]float64 `json:"points" validate:"required,min=1"`
	Clusters      int          `json:"clusters" validate:"required,min=1"`
	MinPoints     *int         `json:"min_points,omitempty" validate:"omitempty,min=0"`
	Demand        []int        `json:"demand,omitempty" validate:"omitempty,dive,min=0"`
	MaxIterations int          `json:"max_iterations,omitempty" validate:"omitempty,min=1,max=10000"`
	Seed          int64        `json:"seed,omitempty"`
	Restarts      int          `json:"restarts,omitempty" validate:"omitempty,min=1,max=64"`
	Init          string       `json:"init,omitempty" validate:"omitempty,oneof=bbox sample"`
	StrictScale   bool         `json:"strict_scale,omitempty"`
}

// ClusterResponse is the body of a successful POST /v1/cluster.
type ClusterResponse struct {
	RunID      string       `json:"run_id"`
	Labels     []int        `json:"labels"`
	Sizes      []int        `json:"sizes"`
	Centers    [][2]float64 `json:"centers"`
	Iterations int          `json:"iterations"`
	State      string       `json:"state"`
	Converged  bool         `json:"converged"`
	Inertia    float64      `json:"inertia"`
	Seed       int64        `json:"seed"`
	Restart    int          `json:"restart"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	RunID string `json:"run_id,omitempty"`
}

func (s *Server) cluster(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	w.Header().Set(headerRunID, runID)
	log := s.log.With(zap.String("run_id", runID))

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody())
	var req ClusterRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, runID, errTooManyPoints)
			return
		}
		writeError(w, http.StatusBadRequest, runID, fmt.Errorf("malformed body: %w", err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeKindError(w, http.StatusUnprocessableEntity, runID, kmeans.KindInvalidConfiguration, err)
			return
		}
		writeError(w, http.StatusBadRequest, runID, err)
		return
	}
	if len(req.Points) > s.cfg.MaxPoints {
		writeError(w, http.StatusRequestEntityTooLarge, runID,
			fmt.Errorf("%w: %d > %d", errTooManyPoints, len(req.Points), s.cfg.MaxPoints))
		return
	}

	cfg, restarts, err := s.kmeansConfig(&req)
	if err != nil {
		writeKindError(w, http.StatusUnprocessableEntity, runID, kmeans.KindInvalidConfiguration, err)
		return
	}
	points := make([]geom.Point, len(req.Points))
	for i, p := range req.Points {
		points[i] = geom.Pt(p[0], p[1])
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	log.Info("Computing clusters", zap.Int("n", len(points)), zap.Int("k", cfg.K), zap.Int("restarts", restarts))
	opts := []kmeans.Option{kmeans.WithLogger(log), kmeans.WithObserver(s.metrics)}
	var res *kmeans.Result
	if restarts > 1 {
		res, err = kmeans.ClusterBest(ctx, points, cfg, restarts, opts...)
	} else {
		res, err = kmeans.Cluster(ctx, points, cfg, opts...)
	}
	if err != nil {
		s.metrics.RunFailed()
		log.Warn("Clustering failed", zap.Error(err))
		s.writeRunError(w, runID, err)
		return
	}
	log.Info("Clusters ready",
		zap.Stringer("state", res.State),
		zap.Int("iterations", res.Iterations),
		zap.Float64("inertia", res.Inertia),
	)

	writeJSON(w, http.StatusOK, newClusterResponse(runID, res))
}

// kmeansConfig merges req over the server defaults.
func (s *Server) kmeansConfig(req *ClusterRequest) (kmeans.Config, int, error) {
	c := s.defaults
	c.Clusters = req.Clusters
	c.Demand = req.Demand
	if req.MinPoints != nil {
		c.MinPoints = *req.MinPoints
	}
	if req.MaxIterations > 0 {
		c.MaxIterations = req.MaxIterations
	}
	if req.Seed != 0 {
		c.Seed = req.Seed
	}
	if req.Restarts > 0 {
		c.Restarts = req.Restarts
	}
	if req.Init != "" {
		c.Init = req.Init
	}
	c.StrictScale = c.StrictScale || req.StrictScale

	cfg, err := c.KMeans()
	if err != nil {
		return kmeans.Config{}, 0, err
	}
	restarts := c.Restarts
	if restarts < 1 {
		restarts = 1
	}
	return cfg, restarts, nil
}

// maxBody bounds the request body: about 64 bytes per point plus slack.
func (s *Server) maxBody() int64 {
	return int64(s.cfg.MaxPoints)*64 + 1<<20
}

func (s *Server) writeRunError(w http.ResponseWriter, runID string, err error) {
	switch {
	case errors.Is(err, kmeans.ErrInvalidConfiguration):
		writeKindError(w, http.StatusUnprocessableEntity, runID, kmeans.KindInvalidConfiguration, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, runID, err)
	default:
		writeKindError(w, http.StatusInternalServerError, runID, kmeans.KindOf(err), err)
	}
}

func newClusterResponse(runID string, res *kmeans.Result) ClusterResponse {
	centers := make([][2]float64, len(res.Centers))
	for j, c := range res.Centers {
		centers[j] = [2]float64{c.X, c.Y}
	}
	return ClusterResponse{
		RunID:      runID,
		Labels:     res.Labels,
		Sizes:      res.Sizes,
		Centers:    centers,
		Iterations: res.Iterations,
		State:      res.State.String(),
		Converged:  res.Converged(),
		Inertia:    res.Inertia,
		Seed:       res.Seed,
		Restart:    res.Restart,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, runID string, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), RunID: runID})
}

func writeKindError(w http.ResponseWriter, status int, runID string, kind kmeans.Kind, err error) {
	resp := ErrorResponse{Error: err.Error(), RunID: runID}
	if kind != 0 {
		resp.Kind = kind.String()
	}
	writeJSON(w, status, resp)
}
