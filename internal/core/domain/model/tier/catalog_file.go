package tier

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Tiers []tierEntry `yaml:"tiers"`
}

type tierEntry struct {
	ID                 string       `yaml:"id"`
	DisplayName        string       `yaml:"display_name"`
	Summary            string       `yaml:"summary"`
	CostPerKm          float64      `yaml:"cost_per_km"`
	DurationMultiplier float64      `yaml:"duration_multiplier"`
	Vehicle            vehicleEntry `yaml:"vehicle"`
}

type vehicleEntry struct {
	Class         string    `yaml:"class"`
	Description   string    `yaml:"description"`
	MaxWeightKg   float64   `yaml:"max_weight_kg"`
	MaxDimensions []float64 `yaml:"max_dimensions_m"`
}

// LoadCatalog decodes a YAML catalog:
//
//	tiers:
//	  - id: Premium
//	    display_name: Express
//	    summary: For very large or heavy loads
//	    cost_per_km: 3.0
//	    duration_multiplier: 1.0
//	    vehicle:
//	      class: Express
//	      max_weight_kg: 3000
//	      max_dimensions_m: [5, 2.5, 2.5]
//
// Unknown keys are rejected so that a typo cannot silently drop a rate.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode tier catalog: %w", err)
	}

	tiers := make([]Tier, 0, len(file.Tiers))
	for i, entry := range file.Tiers {
		if len(entry.Vehicle.MaxDimensions) != 3 {
			return nil, fmt.Errorf("tier #%d %q: max_dimensions_m must have 3 values", i+1, entry.ID)
		}

		t, err := NewTier(ID(entry.ID), entry.DisplayName, entry.Summary, entry.CostPerKm, entry.DurationMultiplier,
			Vehicle{
				Class:       entry.Vehicle.Class,
				Description: entry.Vehicle.Description,
				MaxWeightKg: entry.Vehicle.MaxWeightKg,
				MaxLengthM:  entry.Vehicle.MaxDimensions[0],
				MaxWidthM:   entry.Vehicle.MaxDimensions[1],
				MaxHeightM:  entry.Vehicle.MaxDimensions[2],
			})
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}

	return NewCatalog(tiers...)
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tier catalog: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}
