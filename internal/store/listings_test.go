package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *Listings {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Listing{}, &models.Offender{}))
	return NewListings(db)
}

func sampleListing(owner int64) *models.Listing {
	return &models.Listing{
		OwnerID:      owner,
		Lang:         "ar",
		DealKind:     models.DealRent,
		PropertyType: "شقة",
		District:     "النرجس",
		Price:        30000,
		AreaSqm:      140,
		Bedrooms:     3,
		Bathrooms:    2,
		Description:  "شقة جديدة",
		Contact:      "@owner",
		LicenseNo:    "12345678",
	}
}

func TestCreateAssignsIDAndPending(t *testing.T) {
	assert := assert.New(t)
	s := testStore(t)

	id1, err := s.Create(sampleListing(10))
	require.NoError(t, err)
	id2, err := s.Create(sampleListing(10))
	require.NoError(t, err)
	assert.Greater(id2, id1)

	l, err := s.Get(id1)
	require.NoError(t, err)
	assert.Equal(models.StatusPending, l.Status)
}

func TestCreateRequiresLicense(t *testing.T) {
	s := testStore(t)
	l := sampleListing(10)
	l.LicenseNo = ""
	_, err := s.Create(l)
	assert.Error(t, err)
}

func TestCreateCapsPhotos(t *testing.T) {
	s := testStore(t)
	l := sampleListing(10)
	for i := 0; i < 14; i++ {
		l.PhotoIDs = append(l.PhotoIDs, fmt.Sprintf("photo-%d", i))
	}
	id, err := s.Create(l)
	require.NoError(t, err)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Len(t, got.PhotoIDs, models.MaxPhotos)
}

func TestSetStatusTransitions(t *testing.T) {
	assert := assert.New(t)
	s := testStore(t)

	id, err := s.Create(sampleListing(10))
	require.NoError(t, err)

	// pending -> approved
	assert.NoError(s.SetStatus(id, models.StatusApproved))
	l, _ := s.Get(id)
	assert.Equal(models.StatusApproved, l.Status)

	// redundant approval
	assert.ErrorIs(s.SetStatus(id, models.StatusApproved), ErrAlreadyInStatus)

	// rejection works even after approval, but never reverses back
	assert.NoError(s.SetStatus(id, models.StatusRejected))
	assert.ErrorIs(s.SetStatus(id, models.StatusRejected), ErrAlreadyInStatus)
	assert.ErrorIs(s.SetStatus(id, models.StatusApproved), ErrBadTransition)

	// unknown id and bogus status
	assert.ErrorIs(s.SetStatus(9999, models.StatusApproved), ErrNotFound)
	assert.ErrorIs(s.SetStatus(id, "archived"), ErrBadTransition)
}

func TestListByOwnerNewestFirst(t *testing.T) {
	assert := assert.New(t)
	s := testStore(t)

	var ids []uint
	for i := 0; i < 3; i++ {
		l := sampleListing(77)
		l.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		id, err := s.Create(l)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := s.Create(sampleListing(88))
	require.NoError(t, err)

	got, err := s.ListByOwner(77, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(ids[2], got[0].ID)
	assert.Equal(ids[0], got[2].ID)

	got, err = s.ListByOwner(77, 2)
	require.NoError(t, err)
	assert.Len(got, 2)
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)
	s := testStore(t)

	mk := func(deal string, price uint64, district string, approve bool, created time.Time) uint {
		l := sampleListing(5)
		l.DealKind = deal
		l.Price = price
		l.District = district
		l.CreatedAt = created
		id, err := s.Create(l)
		require.NoError(t, err)
		if approve {
			require.NoError(t, s.SetStatus(id, models.StatusApproved))
		}
		return id
	}

	base := time.Now().Add(-time.Hour)
	idOld := mk(models.DealSale, 500000, "العليا Olaya", true, base)
	idNew := mk(models.DealSale, 900000, "Olaya district", true, base.Add(time.Minute))
	mk(models.DealSale, 2000000, "Olaya", true, base)        // above max price
	mk(models.DealRent, 400000, "Olaya", true, base)         // wrong deal kind
	mk(models.DealSale, 700000, "Olaya", false, base)        // still pending
	mk(models.DealSale, 600000, "olaya lowercase", true, base) // case-sensitive miss

	got, err := s.Search(SearchFilter{
		DealKind: models.DealSale,
		MinPrice: 300000,
		MaxPrice: 1500000,
		District: "Olaya",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(idNew, got[0].ID, "newest first")
	assert.Equal(idOld, got[1].ID)
}

func TestSearchCapped(t *testing.T) {
	s := testStore(t)
	for i := 0; i < SearchLimit+5; i++ {
		l := sampleListing(6)
		id, err := s.Create(l)
		require.NoError(t, err)
		require.NoError(t, s.SetStatus(id, models.StatusApproved))
	}
	got, err := s.Search(SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, got, SearchLimit)
}
