package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ipo-exit-planner/internal/api/models"
	"ipo-exit-planner/internal/report"
	"ipo-exit-planner/internal/strategy"
	"ipo-exit-planner/internal/tax"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	all := strategy.All()
	out := make([]models.StrategyInfo, 0, len(all))
	for _, s := range all {
		d := s.Decision()
		term := tax.ShortTerm
		if d.HoldsLongTerm() {
			term = tax.LongTerm
		}
		out = append(out, models.StrategyInfo{
			Name:        s.Name(),
			Description: report.Describe(d),
			Moves:       d.Moves(),
			Term:        term.String(),
			Priority:    d.Priority(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"strategies": out})
}
