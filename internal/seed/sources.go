package seed

import (
	"embed"
	"encoding/json"

	"github.com/tvalderas/battfit-go/internal/errors"
)

//go:embed data/*.json
var seedData embed.FS

// RawBattery is one battery entry from the master data set.
type RawBattery struct {
	Brand          string  `json:"brand"`
	ModelCode      string  `json:"model_code"`
	ItemName       string  `json:"item_name"`
	Description    string  `json:"description"`
	WarrantyMonths int     `json:"warranty_months"`
	PriceRegular   float64 `json:"price_full"`
	PriceDiscount  float64 `json:"price_discounted"`
	Stock          int     `json:"stock"`
}

// RawVehicleConfiguration is one vehicle trim/variant entry. The make field
// may carry an alias or misspelling; it is canonicalized before writing.
type RawVehicleConfiguration struct {
	Make          string `json:"vehicle_make"`
	Model         string `json:"vehicle_model"`
	YearStart     int    `json:"year_start"`
	YearEnd       int    `json:"year_end"`
	EngineDetails string `json:"engine_details"`
	Notes         string `json:"notes"`
}

// RawFitment links one battery to one vehicle configuration by their
// natural keys.
type RawFitment struct {
	Brand         string `json:"brand"`
	ModelCode     string `json:"model_code"`
	Make          string `json:"vehicle_make"`
	Model         string `json:"vehicle_model"`
	YearStart     int    `json:"year_start"`
	YearEnd       int    `json:"year_end"`
	EngineDetails string `json:"engine_details"`
}

// Sources bundles the three ordered seed data sets. Tests inject their own;
// production runs use DefaultSources.
type Sources struct {
	Batteries      []RawBattery
	Configurations []RawVehicleConfiguration
	Fitments       []RawFitment
}

// DefaultSources parses the embedded seed data files.
func DefaultSources() (Sources, error) {
	var s Sources
	if err := loadJSON("data/batteries.json", &s.Batteries); err != nil {
		return Sources{}, err
	}
	if err := loadJSON("data/vehicle_configurations.json", &s.Configurations); err != nil {
		return Sources{}, err
	}
	if err := loadJSON("data/fitments.json", &s.Fitments); err != nil {
		return Sources{}, err
	}
	return s, nil
}

func loadJSON(name string, v any) error {
	data, err := seedData.ReadFile(name)
	if err != nil {
		return errors.New(err).
			Component("seed").
			Category(errors.CategoryFileIO).
			Context("file", name).
			Build()
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Newf("parsing %s: %w", name, err).
			Component("seed").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}
