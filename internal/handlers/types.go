package handlers

import (
	"fmt"
	"time"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"
)

// ListingView is the public API shape of a listing. The deed number and the
// owner's Telegram ID never leave the server.
type ListingView struct {
	ID           uint      `json:"id"`
	DealKind     string    `json:"deal_kind"`
	PropertyType string    `json:"property_type"`
	District     string    `json:"district"`
	Price        uint64    `json:"price"`
	AreaSqm      uint64    `json:"area_sqm"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Description  string    `json:"description"`
	Contact      string    `json:"contact"`
	LicenseNo    string    `json:"license_no"`
	Status       string    `json:"status"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func buildListingView(l models.Listing) ListingView {
	view := ListingView{
		ID:           l.ID,
		DealKind:     l.DealKind,
		PropertyType: l.PropertyType,
		District:     l.District,
		Price:        l.Price,
		AreaSqm:      l.AreaSqm,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		Description:  l.Description,
		Contact:      l.Contact,
		LicenseNo:    l.LicenseNo,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}

	if len(l.PhotoIDs) > 0 {
		view.PhotoURL = fmt.Sprintf("/api/listings/%d/photo", l.ID)
	}

	return view
}
