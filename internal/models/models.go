package models

import (
	"time"
)

type Listing struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerID      int64     `gorm:"index" json:"owner_id"`
	OwnerName    string    `gorm:"size:64" json:"owner_name"`
	Lang         string    `gorm:"size:8" json:"lang"`
	DealKind     string    `gorm:"size:8;index" json:"deal_kind"`
	PropertyType string    `gorm:"size:64" json:"property_type"`
	District     string    `gorm:"size:128;index" json:"district"`
	Price        uint64    `gorm:"index" json:"price"`
	AreaSqm      uint64    `json:"area_sqm"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Description  string    `gorm:"size:2048" json:"description"`
	Contact      string    `gorm:"size:128" json:"contact"`
	LicenseNo    string    `gorm:"size:16" json:"license_no"`
	DeedNo       string    `gorm:"size:32" json:"-"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	PhotoIDs     []string  `gorm:"serializer:json" json:"-"`
	Status       string    `gorm:"size:16;index" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	DealSale = "sale"
	DealRent = "rent"
)

// MaxPhotos bounds the media references attached to one listing.
const MaxPhotos = 10

// Offender is the per-user violation counter. Count only ever grows; there
// is no decay or reset path.
type Offender struct {
	UserID     int64     `gorm:"primaryKey" json:"user_id"`
	Count      int       `json:"count"`
	LastReason string    `gorm:"size:32" json:"last_reason"`
	UpdatedAt  time.Time `json:"updated_at"`
}
