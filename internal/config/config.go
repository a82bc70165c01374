package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"ipo-exit-planner/internal/data"
	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/scenario"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Origin      string `yaml:"origin"`
	Destination string `yaml:"destination"`

	// Optional: load extra jurisdictions from separate YAML files
	// (e.g. examples/jurisdictions/*.yaml). Entries in Jurisdictions override
	// files with the same code.
	JurisdictionFiles []string             `yaml:"jurisdiction_files"`
	Jurisdictions     []JurisdictionConfig `yaml:"jurisdictions"`

	Scenario ScenarioConfig `yaml:"scenario"`
	Grid     GridConfig     `yaml:"grid"`
}

type ScenarioConfig struct {
	NumShares    float64 `yaml:"num_shares"`
	IPOPrice     float64 `yaml:"ipo_price"`
	MovingCosts  float64 `yaml:"moving_costs"`
	InterestRate float64 `yaml:"interest_rate"`
}

// GridConfig sets the return axes. Pointers distinguish "unset" from 0.
type GridConfig struct {
	MinReturn *float64 `yaml:"min_return"`
	MaxReturn *float64 `yaml:"max_return"`
	Step      *float64 `yaml:"step"`
}

type JurisdictionConfig struct {
	Code                 string          `yaml:"code"`
	Name                 string          `yaml:"name"`
	FederalShortTermRate float64         `yaml:"federal_short_term_rate"`
	FederalLongTermRate  float64         `yaml:"federal_long_term_rate"`
	WithholdingRate      float64         `yaml:"withholding_rate"`
	Brackets             []BracketConfig `yaml:"brackets"`
}

type BracketConfig struct {
	Threshold float64 `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Origin:      data.DefaultOrigin,
		Destination: data.DefaultDestination,
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.Origin == "" {
		c.Origin = data.DefaultOrigin
	}
	if c.Destination == "" {
		c.Destination = data.DefaultDestination
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// Inline jurisdictions win over same-code entries from files.
	var fromFiles []JurisdictionConfig
	for _, f := range c.JurisdictionFiles {
		p := f
		if !filepath.IsAbs(p) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), p)
			if _, err := os.Stat(cand); err == nil {
				p = cand
			}
		}
		loaded, err := LoadJurisdictionFile(p)
		if err != nil {
			return nil, err
		}
		fromFiles = append(fromFiles, loaded)
	}
	c.Jurisdictions = mergeByCode(fromFiles, c.Jurisdictions)
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Scenario.Validate(); err != nil {
		return fmt.Errorf("scenario invalid: %w", err)
	}
	table, err := c.Table()
	if err != nil {
		return fmt.Errorf("jurisdictions invalid: %w", err)
	}
	if _, err := table.Get(c.Origin); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if _, err := table.Get(c.Destination); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	axis, err := c.Axis()
	if err != nil {
		return fmt.Errorf("grid invalid: %w", err)
	}
	if err := axis.Validate(); err != nil {
		return fmt.Errorf("grid invalid: %w", err)
	}
	return nil
}

// Validate rejects non-finite numbers; range checks happen once the
// values become a scenario input.
func (s ScenarioConfig) Validate() error {
	return checkFinite(
		field{"num_shares", s.NumShares},
		field{"ipo_price", s.IPOPrice},
		field{"moving_costs", s.MovingCosts},
		field{"interest_rate", s.InterestRate},
	)
}

// Validate rejects non-finite rates and thresholds.
func (jc JurisdictionConfig) Validate() error {
	fields := []field{
		{"federal_short_term_rate", jc.FederalShortTermRate},
		{"federal_long_term_rate", jc.FederalLongTermRate},
		{"withholding_rate", jc.WithholdingRate},
	}
	for i, b := range jc.Brackets {
		fields = append(fields,
			field{fmt.Sprintf("brackets[%d].threshold", i), b.Threshold},
			field{fmt.Sprintf("brackets[%d].rate", i), b.Rate},
		)
	}
	if err := checkFinite(fields...); err != nil {
		return fmt.Errorf("jurisdiction %s: %w", jc.Code, err)
	}
	return nil
}

type field struct {
	name string
	v    float64
}

func checkFinite(fields ...field) error {
	for _, f := range fields {
		if err := model.CheckFinite(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Table returns the built-in jurisdictions with this config's overrides
// merged on top. Codes not in the built-in table are added.
func (c *Config) Table() (*data.Table, error) {
	base := data.DefaultJurisdictions()
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[strings.ToUpper(p.Code)] = i
	}
	for _, jc := range c.Jurisdictions {
		if err := jc.Validate(); err != nil {
			return nil, err
		}
		code := strings.ToUpper(strings.TrimSpace(jc.Code))
		if i, ok := index[code]; ok {
			base[i] = MergeJurisdiction(base[i], jc)
			continue
		}
		index[code] = len(base)
		base = append(base, MergeJurisdiction(model.JurisdictionProfile{
			Code:                 code,
			FederalShortTermRate: data.FederalShortTermRate,
			FederalLongTermRate:  data.FederalLongTermRate,
			WithholdingRate:      data.WithholdingRate,
		}, jc))
	}
	return data.NewTable(base)
}

// Axis returns the configured grid axis, falling back to the default for
// unset fields. It does not range-check the result.
func (c *Config) Axis() (scenario.Axis, error) {
	a := scenario.DefaultAxis()
	for _, f := range []struct {
		name string
		v    *float64
		dst  *decimal.Decimal
	}{
		{"min_return", c.Grid.MinReturn, &a.Min},
		{"max_return", c.Grid.MaxReturn, &a.Max},
		{"step", c.Grid.Step, &a.Step},
	} {
		if f.v == nil {
			continue
		}
		v, err := model.FiniteDecimal(f.name, *f.v)
		if err != nil {
			return scenario.Axis{}, err
		}
		*f.dst = v
	}
	return a, nil
}

type jurisdictionFileWrapper struct {
	Jurisdiction JurisdictionConfig `yaml:"jurisdiction"`
}

// LoadJurisdictionFile reads a single jurisdiction preset.
func LoadJurisdictionFile(path string) (JurisdictionConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return JurisdictionConfig{}, err
	}
	var w jurisdictionFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return JurisdictionConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if strings.TrimSpace(w.Jurisdiction.Code) == "" {
		return JurisdictionConfig{}, fmt.Errorf("%s: jurisdiction.code is required", path)
	}
	if err := w.Jurisdiction.Validate(); err != nil {
		return JurisdictionConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return w.Jurisdiction, nil
}

// MergeJurisdiction overlays non-zero fields from override onto base.
// A non-empty bracket list replaces the base schedule entirely.
func MergeJurisdiction(base model.JurisdictionProfile, override JurisdictionConfig) model.JurisdictionProfile {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	// Note: a rate of 0 cannot be expressed as an override; use a bracket
	// list or a new code instead.
	if override.FederalShortTermRate != 0 {
		out.FederalShortTermRate = decimal.NewFromFloat(override.FederalShortTermRate)
	}
	if override.FederalLongTermRate != 0 {
		out.FederalLongTermRate = decimal.NewFromFloat(override.FederalLongTermRate)
	}
	if override.WithholdingRate != 0 {
		out.WithholdingRate = decimal.NewFromFloat(override.WithholdingRate)
	}
	if len(override.Brackets) > 0 {
		out.Brackets = make([]model.TaxBracket, 0, len(override.Brackets))
		for _, b := range override.Brackets {
			out.Brackets = append(out.Brackets, model.TaxBracket{
				Threshold: decimal.NewFromFloat(b.Threshold),
				Rate:      decimal.NewFromFloat(b.Rate),
			})
		}
	}
	return out
}

// ProfileConfig converts a profile back to its YAML shape.
func ProfileConfig(p model.JurisdictionProfile) JurisdictionConfig {
	jc := JurisdictionConfig{
		Code:                 p.Code,
		Name:                 p.Name,
		FederalShortTermRate: p.FederalShortTermRate.InexactFloat64(),
		FederalLongTermRate:  p.FederalLongTermRate.InexactFloat64(),
		WithholdingRate:      p.WithholdingRate.InexactFloat64(),
	}
	for _, b := range p.Brackets {
		jc.Brackets = append(jc.Brackets, BracketConfig{
			Threshold: b.Threshold.InexactFloat64(),
			Rate:      b.Rate.InexactFloat64(),
		})
	}
	return jc
}

func mergeByCode(base, override []JurisdictionConfig) []JurisdictionConfig {
	out := make([]JurisdictionConfig, 0, len(base)+len(override))
	seen := map[string]int{}
	for _, list := range [][]JurisdictionConfig{base, override} {
		for _, jc := range list {
			code := strings.ToUpper(strings.TrimSpace(jc.Code))
			if i, ok := seen[code]; ok {
				out[i] = jc
				continue
			}
			seen[code] = len(out)
			out = append(out, jc)
		}
	}
	return out
}
