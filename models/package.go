package models

import (
	"time"
)

const (
	PackageDiamond    = "diamond"
	PackageMembership = "membership"
	PackageEvoAccess  = "evo_access"
)

// Package is the catalog row. The core only reads it at order creation to set
// the order's locked price; everything else about the catalog belongs to admin
// CRUD.
type Package struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	Type       string `gorm:"size:32;index" json:"type"`
	Name       string `gorm:"size:128" json:"name"`
	Amount     int    `json:"amount"`
	PricePaisa int64  `json:"price_paisa"`
	Active     bool   `gorm:"default:true;index" json:"active"`
	SortOrder  int    `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
