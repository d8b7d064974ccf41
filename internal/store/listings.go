package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("listing not found")
	ErrAlreadyInStatus = errors.New("listing already in that status")
	ErrBadTransition   = errors.New("invalid status transition")
)

// SearchLimit caps the result set of a search query.
const SearchLimit = 20

// Listings is the persistent listing repository. Status transitions for one
// listing are serialized; records are never deleted, rejected and approved
// rows stay for audit.
type Listings struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewListings(db *gorm.DB) *Listings {
	return &Listings{db: db, locks: make(map[uint]*sync.Mutex)}
}

func (s *Listings) idLock(id uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// Create persists a new listing as pending and returns its assigned id.
func (s *Listings) Create(l *models.Listing) (uint, error) {
	if l.LicenseNo == "" {
		return 0, fmt.Errorf("listing requires a license number")
	}
	if len(l.PhotoIDs) > models.MaxPhotos {
		l.PhotoIDs = l.PhotoIDs[:models.MaxPhotos]
	}
	l.ID = 0
	l.Status = models.StatusPending
	if err := s.db.Create(l).Error; err != nil {
		return 0, err
	}
	return l.ID, nil
}

func (s *Listings) Get(id uint) (*models.Listing, error) {
	var l models.Listing
	err := s.db.First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// SetStatus transitions a listing's status. Approval is only valid from
// pending; rejection is valid from pending or approved (an admin may pull an
// already-published listing). A redundant call reports ErrAlreadyInStatus; a
// rejected listing never comes back.
func (s *Listings) SetStatus(id uint, status string) error {
	if status != models.StatusApproved && status != models.StatusRejected {
		return fmt.Errorf("%w: %q", ErrBadTransition, status)
	}

	lock := s.idLock(id)
	lock.Lock()
	defer lock.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var l models.Listing
		err := tx.First(&l, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if l.Status == status {
			return ErrAlreadyInStatus
		}
		if status == models.StatusApproved && l.Status != models.StatusPending {
			return fmt.Errorf("%w: %s -> %s", ErrBadTransition, l.Status, status)
		}
		return tx.Model(&l).Update("status", status).Error
	})
}

// ListByOwner returns the owner's submissions, newest first.
func (s *Listings) ListByOwner(ownerID int64, limit int) ([]models.Listing, error) {
	var out []models.Listing
	err := s.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListPending returns listings awaiting review, oldest first so admins work
// the queue in submission order.
func (s *Listings) ListPending(limit int) ([]models.Listing, error) {
	var out []models.Listing
	err := s.db.
		Where("status = ?", models.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SearchFilter narrows a search; zero values mean "any". District matching
// is a case-sensitive substring test against the stored text.
type SearchFilter struct {
	DealKind string
	MinPrice uint64
	MaxPrice uint64
	District string
}

// Search returns approved listings matching the filter, newest first, capped
// at SearchLimit.
func (s *Listings) Search(f SearchFilter) ([]models.Listing, error) {
	q := s.db.Where("status = ?", models.StatusApproved)
	if f.DealKind != "" {
		q = q.Where("deal_kind = ?", f.DealKind)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}

	var out []models.Listing
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}

	// District containment is checked in Go to keep it byte-exact across
	// database collations.
	matched := make([]models.Listing, 0, len(out))
	for _, l := range out {
		if f.District != "" && !strings.Contains(l.District, f.District) {
			continue
		}
		matched = append(matched, l)
		if len(matched) >= SearchLimit {
			break
		}
	}
	return matched, nil
}
