package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/sort-energy-bench/pkg/utils"
)

const jsonDecimals = 6

func WriteJSON(r *Report, path string) error {
	data, err := json.MarshalIndent(rounded(r), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

func rounded(r *Report) *Report {
	out := *r
	out.Series = make([]Series, len(r.Series))
	for i, s := range r.Series {
		pts := make([]Point, len(s.Points))
		for j, p := range s.Points {
			p.AvgTime = utils.RoundDecimal(p.AvgTime, jsonDecimals)
			p.AvgEnergy = utils.RoundDecimal(p.AvgEnergy, jsonDecimals)
			p.TimeStddev = utils.RoundDecimal(p.TimeStddev, jsonDecimals)
			p.EnergyStddev = utils.RoundDecimal(p.EnergyStddev, jsonDecimals)
			pts[j] = p
		}
		out.Series[i] = Series{Algorithm: s.Algorithm, Points: pts}
	}
	return &out
}
