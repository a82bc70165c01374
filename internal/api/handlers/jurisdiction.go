package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/api/models"
	"ipo-exit-planner/internal/config"
	"ipo-exit-planner/internal/data"
	"ipo-exit-planner/internal/model"
)

const sourceBuiltin = "builtin"

// Catalog is the jurisdiction table every handler evaluates against: the
// built-in table with preset files from a directory merged on top.
type Catalog struct {
	Table       *data.Table
	Origin      string
	Destination string

	// sources maps a code to "builtin" or the preset file that last set it.
	sources map[string]string
}

// LoadCatalog reads every *.yaml preset in dir (same shape as
// config.LoadJurisdictionFile). A missing dir or an unparsable file is
// logged and skipped; a preset with invalid brackets is an error.
func LoadCatalog(dir string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := config.Default()
	sources := map[string]string{}
	for _, p := range data.DefaultJurisdictions() {
		sources[p.Code] = sourceBuiltin
	}

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn("jurisdiction directory not readable, using built-in table",
				zap.String("dir", dir), zap.Error(err))
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
				continue
			}
			jc, err := config.LoadJurisdictionFile(filepath.Join(dir, name))
			if err != nil {
				logger.Warn("skipping jurisdiction preset", zap.String("file", name), zap.Error(err))
				continue
			}
			cfg.Jurisdictions = append(cfg.Jurisdictions, jc)
			sources[strings.ToUpper(strings.TrimSpace(jc.Code))] = name
		}
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}
	logger.Info("jurisdictions loaded", zap.Int("count", table.Len()), zap.String("dir", dir))
	return &Catalog{
		Table:       table,
		Origin:      cfg.Origin,
		Destination: cfg.Destination,
		sources:     sources,
	}, nil
}

// Source reports where a jurisdiction came from.
func (c *Catalog) Source(code string) string {
	if s, ok := c.sources[strings.ToUpper(code)]; ok {
		return s
	}
	return sourceBuiltin
}

// JurisdictionHandler handles jurisdiction-related requests
type JurisdictionHandler struct {
	catalog *Catalog
}

// NewJurisdictionHandler creates a new jurisdiction handler
func NewJurisdictionHandler(catalog *Catalog) *JurisdictionHandler {
	return &JurisdictionHandler{catalog: catalog}
}

// ListJurisdictions handles GET /api/v1/jurisdictions
func (h *JurisdictionHandler) ListJurisdictions(c *gin.Context) {
	all := h.catalog.Table.All()
	out := make([]models.JurisdictionInfo, 0, len(all))
	for _, p := range all {
		out = append(out, h.info(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"jurisdictions":       out,
		"default_origin":      h.catalog.Origin,
		"default_destination": h.catalog.Destination,
	})
}

func (h *JurisdictionHandler) info(p model.JurisdictionProfile) models.JurisdictionInfo {
	brackets := make([]models.BracketInfo, 0, len(p.Brackets))
	for _, b := range p.Brackets {
		brackets = append(brackets, models.BracketInfo{Threshold: b.Threshold, Rate: b.Rate})
	}
	return models.JurisdictionInfo{
		Code:                 p.Code,
		Name:                 p.Name,
		Source:               h.catalog.Source(p.Code),
		FederalShortTermRate: p.FederalShortTermRate,
		FederalLongTermRate:  p.FederalLongTermRate,
		WithholdingRate:      p.WithholdingRate,
		TopStateRate:         p.TopRate(),
		Brackets:             brackets,
	}
}
