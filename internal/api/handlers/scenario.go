package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/analysis"
	"ipo-exit-planner/internal/api/models"
	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/report"
	"ipo-exit-planner/internal/scenario"
)

// MaxGridCells bounds a single POST /api/v1/grid request.
const MaxGridCells = 201 * 201

var tsvWriters = map[string]func(io.Writer, *scenario.Grid) error{
	"heatmap":   report.WriteHeatmapTSV,
	"decisions": report.WriteDecisionsTSV,
	"scenarios": report.WriteDetailsTSV,
}

// ScenarioHandler handles scenario and grid evaluation requests
type ScenarioHandler struct {
	catalog *Catalog
	logger  *zap.Logger
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(catalog *Catalog, logger *zap.Logger) *ScenarioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioHandler{catalog: catalog, logger: logger}
}

// EvaluateScenario handles POST /api/v1/scenario
func (h *ScenarioHandler) EvaluateScenario(c *gin.Context) {
	var req models.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	in, err := buildInput(h.catalog, req.ScenarioParams, *req.Return1Pct, *req.Return2Pct)
	if err != nil {
		invalidInput(c, err, h.catalog)
		return
	}

	runID := newRunID(c)
	res, err := scenario.New(h.logger.With(zap.String("run_id", runID))).Evaluate(in)
	if err != nil {
		invalidInput(c, err, h.catalog)
		return
	}

	c.JSON(http.StatusOK, models.ScenarioResponse{
		RunID:       runID,
		Origin:      in.Origin.Code,
		Destination: in.Destination.Code,
		CellResult:  cellResult(res, true),
	})
}

// RunGrid handles POST /api/v1/grid. With ?format=tsv it returns one of the
// TSV files (?file=heatmap|decisions|scenarios, default heatmap).
func (h *ScenarioHandler) RunGrid(c *gin.Context) {
	var req models.GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	var writeTSV func(io.Writer, *scenario.Grid) error
	if c.Query("format") == "tsv" {
		file := c.DefaultQuery("file", "heatmap")
		w, ok := tsvWriters[file]
		if !ok {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST",
				fmt.Errorf("unknown file %q", file),
				map[string]interface{}{"files": []string{"heatmap", "decisions", "scenarios"}})
			return
		}
		writeTSV = w
	}

	in, err := buildInput(h.catalog, req.ScenarioParams, 0, 0)
	if err != nil {
		invalidInput(c, err, h.catalog)
		return
	}

	axis := scenario.DefaultAxis()
	for _, f := range []struct {
		name string
		v    *float64
		dst  *decimal.Decimal
	}{
		{"min_return", req.MinReturn, &axis.Min},
		{"max_return", req.MaxReturn, &axis.Max},
		{"step", req.Step, &axis.Step},
	} {
		if f.v == nil {
			continue
		}
		if *f.dst, err = model.FiniteDecimal(f.name, *f.v); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_GRID", err, nil)
			return
		}
	}
	if err := axis.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_GRID", err, nil)
		return
	}
	if n := axis.Len() * axis.Len(); n > MaxGridCells {
		respondError(c, http.StatusBadRequest, "INVALID_GRID",
			fmt.Errorf("grid has %d cells, limit is %d", n, MaxGridCells), nil)
		return
	}

	runID := newRunID(c)
	log := h.logger.With(zap.String("run_id", runID))
	g, err := scenario.New(log).Run(in, axis, axis)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_GRID", err, nil)
		return
	}

	if writeTSV != nil {
		var buf bytes.Buffer
		if err := writeTSV(&buf, g); err != nil {
			respondError(c, http.StatusInternalServerError, "RENDER_ERROR", err, nil)
			return
		}
		c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, buildGridResponse(runID, in.Origin.Code, in.Destination.Code, g, req.Details))
}

func buildGridResponse(runID, origin, destination string, g *scenario.Grid, details bool) models.GridResponse {
	resp := models.GridResponse{
		RunID:       runID,
		Origin:      origin,
		Destination: destination,
		Return1:     g.Return1,
		Return2:     g.Return2,
		Best:        make([][]string, g.Rows()),
		BestTotal:   make([][]decimal.Decimal, g.Rows()),
	}
	for i := range resp.Best {
		resp.Best[i] = make([]string, g.Cols())
		resp.BestTotal[i] = make([]decimal.Decimal, g.Cols())
	}
	g.Each(func(i, j int, r *scenario.Result) {
		resp.Best[i][j] = string(r.Best)
		resp.BestTotal[i][j] = cents(r.BestTotal)
		if details {
			resp.Cells = append(resp.Cells, cellResult(r, true))
		}
	})

	s := analysis.Summarize(g)
	counts := make(map[string]int, len(s.Counts))
	for d, n := range s.Counts {
		counts[string(d)] = n
	}
	resp.Summary = models.GridSummary{
		Cells:        s.Cells,
		Counts:       counts,
		MinBest:      cents(s.MinBest),
		P05Best:      cents(s.P05Best),
		MeanBest:     cents(s.MeanBest),
		P95Best:      cents(s.P95Best),
		MaxBest:      cents(s.MaxBest),
		MoveShare:    s.MoveShare(),
		MaxBreakeven: cents(s.MaxBreakeven),
	}
	return resp
}
