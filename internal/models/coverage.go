package models

import "github.com/uptrace/bun"

// CoverageArea is read-only reference data seeded by cmd/migrate.
type CoverageArea struct {
	bun.BaseModel `bun:"table:coverage_areas"`

	ID        string  `bun:"id,pk" json:"id"`
	District  string  `bun:"district,notnull" json:"district"`
	City      string  `bun:"city,notnull" json:"city"`
	Area      string  `bun:"area,notnull" json:"area"`
	Latitude  float64 `bun:"latitude,nullzero" json:"latitude,omitempty"`
	Longitude float64 `bun:"longitude,nullzero" json:"longitude,omitempty"`
}
