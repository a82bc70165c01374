package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/scenario"
)

const (
	HeatmapFile   = "heatmap.tsv"
	DecisionsFile = "decisions.tsv"
	DetailsFile   = "scenarios.tsv"

	// Corner is the top-left header cell of the matrix files.
	Corner = `return1\return2`
)

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

// WriteHeatmapTSV writes the best total of every cell.
func WriteHeatmapTSV(w io.Writer, g *scenario.Grid) error {
	return writeMatrix(w, g, func(r *scenario.Result) string {
		return fmtMoney(r.BestTotal)
	})
}

// WriteDecisionsTSV writes the winning strategy label of every cell.
func WriteDecisionsTSV(w io.Writer, g *scenario.Grid) error {
	return writeMatrix(w, g, func(r *scenario.Result) string {
		return string(r.Best)
	})
}

func writeMatrix(w io.Writer, g *scenario.Grid, cell func(*scenario.Result) string) error {
	if g == nil {
		return errors.New("grid is nil")
	}
	cw := newTSVWriter(w)

	header := make([]string, 0, g.Cols()+1)
	header = append(header, Corner)
	for _, v := range g.Return2 {
		header = append(header, fmtPct(v))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, r1 := range g.Return1 {
		row := make([]string, 0, g.Cols()+1)
		row = append(row, fmtPct(r1))
		for j := range g.Return2 {
			row = append(row, cell(g.At(i, j)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDetailsTSV writes one row per (cell, strategy) with the full outcome.
func WriteDetailsTSV(w io.Writer, g *scenario.Grid) error {
	if g == nil {
		return errors.New("grid is nil")
	}
	cw := newTSVWriter(w)

	header := []string{
		"return1_pct",
		"return2_pct",
		"strategy",
		"jurisdiction",
		"proceeds",
		"interest",
		"taxable_gain",
		"federal_tax",
		"state_tax",
		"moving_cost",
		"total",
		"loss_clamped",
		"best",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	var werr error
	g.Each(func(_, _ int, r *scenario.Result) {
		if werr != nil {
			return
		}
		for _, o := range r.Outcomes {
			row := []string{
				fmtPct(r.Return1Pct),
				fmtPct(r.Return2Pct),
				string(o.Decision),
				o.Jurisdiction,
				fmtMoney(o.Proceeds),
				fmtMoney(o.Interest),
				fmtMoney(o.TaxableGain),
				fmtMoney(o.FederalTax),
				fmtMoney(o.StateTax),
				fmtMoney(o.MovingCost),
				fmtMoney(o.Total),
				strconv.FormatBool(o.LossClamped),
				strconv.FormatBool(o.Decision == r.Best),
			}
			if err := cw.Write(row); err != nil {
				werr = err
				return
			}
		}
	})
	if werr != nil {
		return werr
	}

	cw.Flush()
	return cw.Error()
}

type Options struct {
	// Details also writes the long-format scenarios file.
	Details bool
}

// WriteFiles renders every output in memory first, then moves each into dir
// via a temp file and rename. It returns the written paths.
//
// Nothing is touched if rendering fails. If a later rename fails, files
// renamed before it are already in place.
func WriteFiles(dir string, g *scenario.Grid, opts Options) ([]string, error) {
	type output struct {
		name   string
		render func(io.Writer, *scenario.Grid) error
	}
	outputs := []output{
		{HeatmapFile, WriteHeatmapTSV},
		{DecisionsFile, WriteDecisionsTSV},
	}
	if opts.Details {
		outputs = append(outputs, output{DetailsFile, WriteDetailsTSV})
	}

	rendered := make([][]byte, len(outputs))
	for i, o := range outputs {
		var buf bytes.Buffer
		if err := o.render(&buf, g); err != nil {
			return nil, fmt.Errorf("render %s: %w", o.name, err)
		}
		rendered[i] = buf.Bytes()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(outputs))
	for i, o := range outputs {
		p := filepath.Join(dir, o.name)
		if err := writeAtomic(p, rendered[i]); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeAtomic(path string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func fmtPct(x decimal.Decimal) string {
	return x.String()
}

func fmtMoney(x decimal.Decimal) string {
	return x.StringFixed(2)
}
