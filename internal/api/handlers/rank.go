package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/analysis"
	"ipo-exit-planner/internal/api/models"
	"ipo-exit-planner/internal/scenario"
)

// RankHandler handles ranking-related requests
type RankHandler struct {
	catalog *Catalog
	logger  *zap.Logger
}

// NewRankHandler creates a new rank handler
func NewRankHandler(catalog *Catalog, logger *zap.Logger) *RankHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankHandler{catalog: catalog, logger: logger}
}

// RankDestinations handles GET /api/v1/rank
func (h *RankHandler) RankDestinations(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	in, err := buildInput(h.catalog, req.ScenarioParams, *req.Return1Pct, *req.Return2Pct)
	if err != nil {
		invalidInput(c, err, h.catalog)
		return
	}

	runID := newRunID(c)
	e := scenario.New(h.logger.With(zap.String("run_id", runID)))
	ranked, err := analysis.RankDestinations(e, in, h.catalog.Table.All())
	if err != nil {
		invalidInput(c, err, h.catalog)
		return
	}

	stay := analysis.BestStay(ranked)
	if req.Limit > 0 && req.Limit < len(ranked) {
		ranked = ranked[:req.Limit]
	}

	rankings := make([]models.Ranking, 0, len(ranked))
	for i, r := range ranked {
		rankings = append(rankings, models.Ranking{
			Rank:                i + 1,
			Destination:         r.Destination.Code,
			Name:                r.Destination.Name,
			Best:                string(r.Result.Best),
			BestTotal:           cents(r.Result.BestTotal),
			GainVsStay:          cents(r.Gain(stay)),
			BreakevenMovingCost: cents(r.Result.BreakevenMovingCost),
		})
	}

	c.JSON(http.StatusOK, models.RankResponse{
		RunID:    runID,
		Origin:   in.Origin.Code,
		BestStay: cents(stay),
		Rankings: rankings,
	})
}
