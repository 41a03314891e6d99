package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/ai"
	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/logger"
	"github.com/spigell/hire-picker/internal/scoring"
	"github.com/spigell/hire-picker/internal/team"
)

type rankRequest struct {
	Candidates json.RawMessage  `json:"candidates"`
	Weights    *scoring.Weights `json:"weights"`
}

type explainRequest struct {
	Candidate  json.RawMessage  `json:"candidate"`
	Candidates json.RawMessage  `json:"candidates"`
	Weights    *scoring.Weights `json:"weights"`
}

type pickRequest struct {
	Candidates  json.RawMessage   `json:"candidates"`
	Weights     *scoring.Weights  `json:"weights"`
	Constraints *team.Constraints `json:"constraints"`
	Selected    []string          `json:"selected"`
	Review      bool              `json:"review"`
}

type summaryRequest struct {
	Candidates json.RawMessage `json:"candidates"`
}

type CandidateVO struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Location  string            `json:"location"`
	Score     float64           `json:"score"`
	Breakdown scoring.Breakdown `json:"breakdown"`
	Reasons   []string          `json:"reasons"`
}

type SwapVO struct {
	Out string `json:"out"`
	In  string `json:"in"`
}

type RankResponse struct {
	Candidates []CandidateVO `json:"candidates"`
}

type PickResponse struct {
	Team              []CandidateVO `json:"team"`
	TotalCost         float64       `json:"totalCost"`
	Summary           team.Summary  `json:"summary"`
	Swaps             []SwapVO      `json:"swaps"`
	Manual            bool          `json:"manual"`
	Shortfall         int           `json:"shortfall"`
	DistinctLocations int           `json:"distinctLocations"`
	Review            *ai.Review    `json:"review,omitempty"`
	ReviewError       string        `json:"reviewError,omitempty"`
}

func newCandidateVO(_ int, s scoring.Scored) CandidateVO {
	return CandidateVO{
		Name:      s.Candidate.Name,
		Email:     s.Candidate.Email,
		Location:  s.Candidate.Location,
		Score:     s.Score,
		Breakdown: s.Breakdown,
		Reasons:   s.Reasons(),
	}
}

func (s *Server) rank(c *gin.Context) {
	var req rankRequest
	if !s.bind(c, &req) {
		return
	}
	pool, ok := s.candidates(c, req.Candidates)
	if !ok {
		return
	}
	w, ok := s.weights(c, req.Weights)
	if !ok {
		return
	}

	ranked, err := scoring.RankBatched(c.Request.Context(), pool, w, s.cfg.BatchSize)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusServiceUnavailable, "cancelled", "Ranking was interrupted", nil)
		return
	}
	s.metrics.scored.Add(float64(len(pool)))

	c.JSON(http.StatusOK, RankResponse{Candidates: slice.Map(ranked, newCandidateVO)})
}

func (s *Server) explain(c *gin.Context) {
	var req explainRequest
	if !s.bind(c, &req) {
		return
	}
	if len(req.Candidate) == 0 {
		respondError(c, http.StatusBadRequest, "bad_request", "candidate is required", nil)
		return
	}

	single := append(append([]byte{'['}, req.Candidate...), ']')
	target, ok := s.candidates(c, single)
	if !ok {
		return
	}

	var pool []candidate.Candidate
	if len(req.Candidates) > 0 {
		if pool, ok = s.candidates(c, req.Candidates); !ok {
			return
		}
	}
	if candidate.NewPool(pool).FindByEmail(target[0].Email) == nil {
		pool = append(pool, target[0])
	}

	w, ok := s.weights(c, req.Weights)
	if !ok {
		return
	}

	res := scoring.Score(target[0], scoring.Context{Weights: w, All: pool})
	s.metrics.scored.Inc()

	c.JSON(http.StatusOK, newCandidateVO(0, scoring.Scored{Candidate: target[0], Result: res}))
}

func (s *Server) pick(c *gin.Context) {
	var req pickRequest
	if !s.bind(c, &req) {
		return
	}
	pool, ok := s.candidates(c, req.Candidates)
	if !ok {
		return
	}
	w, ok := s.weights(c, req.Weights)
	if !ok {
		return
	}

	limits := s.cfg.Constraints
	if req.Constraints != nil {
		limits = *req.Constraints
	}
	if err := s.validate.Struct(limits); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "invalid_constraints", err.Error(), nil)
		return
	}

	res := team.Resolve(pool, req.Selected, w, limits)
	s.metrics.scored.Add(float64(len(pool)))
	mode := "auto"
	if res.Manual {
		mode = "manual"
	}
	s.metrics.picked.WithLabelValues(mode).Inc()
	if res.Shortfall(limits) > 0 {
		s.metrics.shortfall.Inc()
	}

	s.logger.Info("team picked",
		append(logger.TeamFields(len(res.Team), res.DistinctLocations(), res.TotalCost),
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("mode", mode),
		)...,
	)

	resp := PickResponse{
		Team:      slice.Map(res.Members, newCandidateVO),
		TotalCost: res.TotalCost,
		Summary:   res.Summary,
		Swaps: slice.Map(res.Swaps, func(_ int, sw team.Swap) SwapVO {
			return SwapVO{Out: sw.Out.Candidate.Email, In: sw.In.Candidate.Email}
		}),
		Manual:            res.Manual,
		Shortfall:         res.Shortfall(limits),
		DistinctLocations: res.DistinctLocations(),
	}

	if req.Review && s.reviewer != nil && len(res.Team) > 0 {
		review, err := s.reviewer.Review(c.Request.Context(), ai.NewTeamBrief(res, limits))
		if err != nil {
			s.logger.Warn("team review failed", zap.String("request_id", RequestIDFromContext(c)), zap.Error(err))
			resp.ReviewError = err.Error()
		} else {
			resp.Review = review
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) summary(c *gin.Context) {
	var req summaryRequest
	if !s.bind(c, &req) {
		return
	}
	pool, ok := s.candidates(c, req.Candidates)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, team.Summarize(pool))
}

func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "Malformed request body", err.Error())
		return false
	}
	return true
}

func (s *Server) candidates(c *gin.Context, raw json.RawMessage) ([]candidate.Candidate, bool) {
	if len(raw) == 0 {
		respondError(c, http.StatusBadRequest, "bad_request", "candidates are required", nil)
		return nil, false
	}

	pool, err := candidate.Parse(raw)
	if err != nil {
		var verr *candidate.ValidationError
		if errors.As(err, &verr) {
			respondError(c, http.StatusUnprocessableEntity, "invalid_candidates", "Candidates failed validation", verr.Errors)
			return nil, false
		}
		respondError(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return nil, false
	}
	return pool, true
}

func (s *Server) weights(c *gin.Context, override *scoring.Weights) (scoring.Weights, bool) {
	w := s.cfg.Weights
	if override != nil {
		w = *override
	}
	if err := s.validate.Struct(w); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "invalid_weights", err.Error(), nil)
		return w, false
	}
	return w, true
}
