// model.go this code defines the data model for the application
package datastore

import (
	"regexp"
	"strings"
	"time"
)

// Battery represents one battery product. Identity is the natural key
// (brand, model code); the string primary key is derived from it so that
// re-seeding the same record is an update, never a duplicate.
type Battery struct {
	ID             string `gorm:"primaryKey;size:255"`
	Brand          string `gorm:"size:128;not null;uniqueIndex:idx_batteries_brand_model"`
	ModelCode      string `gorm:"size:100;not null;uniqueIndex:idx_batteries_brand_model"`
	ItemName       string `gorm:"size:255"`
	Description    string `gorm:"type:text"`
	WarrantyMonths int
	PriceRegular   float64 `gorm:"not null"`
	PriceDiscount  float64
	Stock          int       `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// VehicleConfiguration describes one vehicle trim/variant a battery can fit.
// The composite unique index is the natural key used for idempotent upserts.
type VehicleConfiguration struct {
	ID            uint   `gorm:"primaryKey"`
	Make          string `gorm:"size:100;not null;uniqueIndex:idx_vehicle_config_natural"`
	Model         string `gorm:"size:100;not null;uniqueIndex:idx_vehicle_config_natural"`
	YearStart     int    `gorm:"not null;uniqueIndex:idx_vehicle_config_natural"`
	YearEnd       int    `gorm:"not null;uniqueIndex:idx_vehicle_config_natural"`
	EngineDetails string `gorm:"size:191;uniqueIndex:idx_vehicle_config_natural"`
	Notes         string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BatteryFitment joins one Battery to one VehicleConfiguration (many-to-many).
// The (battery, configuration) pair is unique so re-running the link step
// never duplicates a fitment.
type BatteryFitment struct {
	ID                     uint                 `gorm:"primaryKey"`
	BatteryID              string               `gorm:"size:255;not null;uniqueIndex:idx_fitment_pair"`
	VehicleConfigurationID uint                 `gorm:"not null;uniqueIndex:idx_fitment_pair"`
	Battery                Battery              `gorm:"foreignKey:BatteryID;constraint:OnDelete:CASCADE"`
	VehicleConfiguration   VehicleConfiguration `gorm:"foreignKey:VehicleConfigurationID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time
}

var idSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateBatteryID derives the stable string primary key for a battery from
// its brand and model code, e.g. ("Fulgor", "F22NF-750") -> "fulgor_f22nf_750".
// Returns an empty string when both components sanitize to nothing.
func GenerateBatteryID(brand, modelCode string) string {
	sanitizedBrand := sanitizeIDComponent(brand)
	sanitizedModel := sanitizeIDComponent(modelCode)

	switch {
	case sanitizedBrand != "" && sanitizedModel != "":
		return sanitizedBrand + "_" + sanitizedModel
	case sanitizedBrand != "":
		return sanitizedBrand
	default:
		return sanitizedModel
	}
}

func sanitizeIDComponent(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = idSeparators.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
