package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"ipo-exit-planner/internal/config"
	"ipo-exit-planner/internal/data"
	"ipo-exit-planner/internal/model"
)

// loadConfig reads --config (if any) and lays explicitly set flags on top.
// Without a config file every flag applies, defaults included.
func loadConfig(cmd *cobra.Command, o *options) (*config.Config, error) {
	if err := checkFlags(o); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	apply := func(name string) bool {
		if flags.Lookup(name) == nil {
			return false
		}
		return o.configPath == "" || flags.Changed(name)
	}

	if flags.Changed("origin") {
		cfg.Origin = o.origin
	}
	if flags.Changed("destination") {
		cfg.Destination = o.destination
	}
	if apply("num-shares") {
		cfg.Scenario.NumShares = o.numShares
	}
	if apply("ipo-price") {
		cfg.Scenario.IPOPrice = o.ipoPrice
	}
	if apply("moving-costs") {
		cfg.Scenario.MovingCosts = o.movingCosts
	}
	if apply("interest-rate") {
		cfg.Scenario.InterestRate = o.interestRate
	}
	if apply("min-return") {
		v := o.minReturn
		cfg.Grid.MinReturn = &v
	}
	if apply("max-return") {
		v := o.maxReturn
		cfg.Grid.MaxReturn = &v
	}
	if apply("return-step") {
		v := o.returnStep
		cfg.Grid.Step = &v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkFlags rejects NaN and ±Inf, which pflag parses without complaint.
func checkFlags(o *options) error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"num-shares", o.numShares},
		{"ipo-price", o.ipoPrice},
		{"moving-costs", o.movingCosts},
		{"interest-rate", o.interestRate},
		{"min-return", o.minReturn},
		{"max-return", o.maxReturn},
		{"return-step", o.returnStep},
		{"return1", o.return1},
		{"return2", o.return2},
	} {
		if err := model.CheckFinite("--"+f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// buildInput turns the scenario section of cfg into an evaluator input for
// one pair of returns.
func buildInput(cfg *config.Config, return1, return2 float64) (model.ScenarioInput, *data.Table, error) {
	s := cfg.Scenario
	if err := s.Validate(); err != nil {
		return model.ScenarioInput{}, nil, err
	}
	r1, err := model.FiniteDecimal("--return1", return1)
	if err != nil {
		return model.ScenarioInput{}, nil, err
	}
	r2, err := model.FiniteDecimal("--return2", return2)
	if err != nil {
		return model.ScenarioInput{}, nil, err
	}
	if s.NumShares <= 0 {
		return model.ScenarioInput{}, nil, errors.New("--num-shares is required and must be > 0")
	}
	if s.IPOPrice <= 0 {
		return model.ScenarioInput{}, nil, errors.New("--ipo-price is required and must be > 0")
	}
	if s.MovingCosts < 0 {
		return model.ScenarioInput{}, nil, fmt.Errorf("--moving-costs must be >= 0, got %v", s.MovingCosts)
	}
	if s.InterestRate < 0 {
		return model.ScenarioInput{}, nil, fmt.Errorf("--interest-rate must be >= 0, got %v", s.InterestRate)
	}

	table, err := cfg.Table()
	if err != nil {
		return model.ScenarioInput{}, nil, err
	}
	origin, err := table.Get(cfg.Origin)
	if err != nil {
		return model.ScenarioInput{}, nil, fmt.Errorf("origin: %w", err)
	}
	dest, err := table.Get(cfg.Destination)
	if err != nil {
		return model.ScenarioInput{}, nil, fmt.Errorf("destination: %w", err)
	}

	in := model.ScenarioInput{
		NumShares:       decimal.NewFromFloat(s.NumShares),
		IPOPrice:        decimal.NewFromFloat(s.IPOPrice),
		Return1Pct:      r1,
		Return2Pct:      r2,
		MovingCost:      decimal.NewFromFloat(s.MovingCosts),
		InterestRatePct: decimal.NewFromFloat(s.InterestRate),
		Origin:          origin,
		Destination:     dest,
	}
	if err := in.Validate(); err != nil {
		return model.ScenarioInput{}, nil, err
	}
	return in, table, nil
}
