package kb

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/binarystar-simulator/model"
)

// CatalogSummary reports what a preset file contributed. It is mainly
// useful for logging from main().
type CatalogSummary struct {
	SystemNames []string
}

// internal JSON shapes - kept unexported so the file format can evolve.
type catalogJSON struct {
	Systems []systemJSON `json:"systems"`
}

type systemJSON struct {
	Name            string               `json:"name"`
	Mass1           float64              `json:"mass1_msun"`
	Mass2           float64              `json:"mass2_msun"`
	SemiMajorAxisAU float64              `json:"semi_major_axis_au"`
	PeriodDays      float64              `json:"period_days"`
	InclinationDeg  *float64             `json:"inclination_deg"` // optional; defaults to edge-on
	Lines1          []model.SpectralLine `json:"lines1"`
	Lines2          []model.SpectralLine `json:"lines2"`
}

// LoadCatalog reads a JSON preset file from r and adds every system to
// the catalog. Decoding and validation errors fail the whole load; a
// partially applied file is worse than a missing one for presets.
func LoadCatalog(c *Catalog, r io.Reader) (*CatalogSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("LoadCatalog: catalog is nil")
	}

	var payload catalogJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadCatalog: decode failed: %w", err)
	}

	// Validate every entry before touching the catalog so that an error
	// anywhere in the file applies none of it.
	staged := make([]StarSystem, 0, len(payload.Systems))
	seen := make(map[string]bool, len(payload.Systems))
	for _, js := range payload.Systems {
		if js.Name == "" {
			return nil, fmt.Errorf("LoadCatalog: system with empty name")
		}
		if seen[js.Name] {
			return nil, fmt.Errorf("LoadCatalog: system %q listed twice", js.Name)
		}
		seen[js.Name] = true
		if _, exists := c.Get(js.Name); exists {
			return nil, fmt.Errorf("LoadCatalog: system %q already exists", js.Name)
		}

		inclination := model.DefaultInclinationDeg
		if js.InclinationDeg != nil {
			inclination = *js.InclinationDeg
		}
		pair, err := model.NewStarPair(js.Mass1, js.Mass2, js.SemiMajorAxisAU, js.PeriodDays, inclination)
		if err != nil {
			return nil, fmt.Errorf("LoadCatalog: system %q: %w", js.Name, err)
		}

		staged = append(staged, StarSystem{
			Name:   js.Name,
			Pair:   pair,
			Lines1: js.Lines1,
			Lines2: js.Lines2,
		})
	}

	summary := &CatalogSummary{SystemNames: make([]string, 0, len(staged))}
	for _, s := range staged {
		if err := c.Add(s); err != nil {
			for _, name := range summary.SystemNames {
				_ = c.Remove(name)
			}
			return nil, fmt.Errorf("LoadCatalog: %w", err)
		}
		summary.SystemNames = append(summary.SystemNames, s.Name)
	}

	return summary, nil
}
