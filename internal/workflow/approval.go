package workflow

import (
	"fmt"
	"log"
	"strings"

	"github.com/mmada170699-cpu/RiyadhRE/internal/i18n"
	"github.com/mmada170699-cpu/RiyadhRE/internal/models"
	"github.com/mmada170699-cpu/RiyadhRE/internal/store"
)

// Publisher posts an approved listing to the publication channel.
type Publisher interface {
	PublishListing(caption string, photoIDs []string) error
	NotifyUser(userID int64, text string) error
}

// Approval drives the pending -> approved/rejected lifecycle.
type Approval struct {
	Listings  *store.Listings
	Publisher Publisher
}

// Approve publishes the listing and marks it approved. Returns
// store.ErrNotFound for unknown ids, store.ErrAlreadyInStatus when the
// listing is approved already (no second publication happens), and
// store.ErrBadTransition for rejected listings. Nothing reaches the
// channel unless the listing is still pending.
func (a *Approval) Approve(id uint) error {
	l, err := a.Listings.Get(id)
	if err != nil {
		return err
	}
	if l.Status == models.StatusApproved {
		return store.ErrAlreadyInStatus
	}
	if l.Status != models.StatusPending {
		return store.ErrBadTransition
	}

	if err := a.Publisher.PublishListing(RenderCaption(l), l.PhotoIDs); err != nil {
		return fmt.Errorf("publish listing %d: %w", id, err)
	}
	if err := a.Listings.SetStatus(id, models.StatusApproved); err != nil {
		return err
	}

	if err := a.Publisher.NotifyUser(l.OwnerID, i18n.Tf(l.Lang, "approved_notice", l.ID)); err != nil {
		log.Printf("workflow: approval notice to %d failed: %v", l.OwnerID, err)
	}
	return nil
}

// Reject marks the listing rejected and tells the submitter why. Idempotent:
// rejecting an already-rejected listing succeeds without a second notice.
func (a *Approval) Reject(id uint, reason string) error {
	l, err := a.Listings.Get(id)
	if err != nil {
		return err
	}
	if l.Status == models.StatusRejected {
		return nil
	}

	if err := a.Listings.SetStatus(id, models.StatusRejected); err != nil {
		return err
	}

	if strings.TrimSpace(reason) == "" {
		reason = i18n.T(l.Lang, "reason_unspecified")
	}
	if err := a.Publisher.NotifyUser(l.OwnerID, i18n.Tf(l.Lang, "rejected_notice", l.ID, reason)); err != nil {
		log.Printf("workflow: rejection notice to %d failed: %v", l.OwnerID, err)
	}
	return nil
}

// RenderCaption builds the published text for a listing. The deed number is
// private and never appears here.
func RenderCaption(l *models.Listing) string {
	deal := "للبيع"
	if l.DealKind == models.DealRent {
		deal = "للإيجار"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏠 %s %s — %s\n", l.PropertyType, deal, l.District)
	fmt.Fprintf(&b, "💰 السعر: %d ريال\n", l.Price)
	fmt.Fprintf(&b, "📐 المساحة: %d م²\n", l.AreaSqm)
	fmt.Fprintf(&b, "🛏 غرف النوم: %d | 🛁 دورات المياه: %d\n", l.Bedrooms, l.Bathrooms)
	if l.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", l.Description)
	}
	fmt.Fprintf(&b, "\n📞 التواصل: %s\n", l.Contact)
	fmt.Fprintf(&b, "🪪 رخصة فال: %s\n", l.LicenseNo)
	fmt.Fprintf(&b, "#%d", l.ID)
	return b.String()
}
