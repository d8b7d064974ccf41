package moderation

import (
	"errors"
	"sync"
	"time"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"

	"gorm.io/gorm"
)

// Ledger is the persistent per-user violation counter. Increments for one
// user are serialized through a per-user mutex so concurrent group traffic
// cannot lose updates; different users proceed independently.
type Ledger struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, locks: make(map[int64]*sync.Mutex)}
}

func (l *Ledger) userLock(userID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}

// RecordViolation increments the user's counter, persists the new count with
// the reason and a timestamp, and returns the new count.
func (l *Ledger) RecordViolation(userID int64, reason string) (int, error) {
	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var count int
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var off models.Offender
		err := tx.First(&off, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			off = models.Offender{UserID: userID}
		} else if err != nil {
			return err
		}
		off.Count++
		off.LastReason = reason
		off.UpdatedAt = time.Now()
		count = off.Count
		return tx.Save(&off).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns the user's current violation count, 0 if the user has none.
func (l *Ledger) Count(userID int64) (int, error) {
	var off models.Offender
	err := l.db.First(&off, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return off.Count, nil
}
