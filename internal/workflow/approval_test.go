package workflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"
	"github.com/mmada170699-cpu/RiyadhRE/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakePublisher struct {
	published []string
	notices   map[int64][]string
	fail      bool
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{notices: make(map[int64][]string)}
}

func (f *fakePublisher) PublishListing(caption string, photoIDs []string) error {
	if f.fail {
		return assert.AnError
	}
	f.published = append(f.published, caption)
	return nil
}

func (f *fakePublisher) NotifyUser(userID int64, text string) error {
	f.notices[userID] = append(f.notices[userID], text)
	return nil
}

func testApproval(t *testing.T) (*Approval, *fakePublisher, *store.Listings) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Listing{}, &models.Offender{}))

	listings := store.NewListings(db)
	pub := newFakePublisher()
	return &Approval{Listings: listings, Publisher: pub}, pub, listings
}

func pendingListing(t *testing.T, listings *store.Listings) uint {
	t.Helper()
	id, err := listings.Create(&models.Listing{
		OwnerID:      700,
		Lang:         "en",
		DealKind:     models.DealSale,
		PropertyType: "villa",
		District:     "Olaya",
		Price:        1200000,
		AreaSqm:      380,
		Bedrooms:     5,
		Bathrooms:    4,
		Contact:      "@owner",
		LicenseNo:    "1234567890",
		DeedNo:       "555666777",
		PhotoIDs:     []string{"p1", "p2"},
	})
	require.NoError(t, err)
	return id
}

func TestApprovePublishesOnce(t *testing.T) {
	assert := assert.New(t)
	a, pub, listings := testApproval(t)
	id := pendingListing(t, listings)

	require.NoError(t, a.Approve(id))
	assert.Len(pub.published, 1)
	assert.Len(pub.notices[700], 1)

	l, err := listings.Get(id)
	require.NoError(t, err)
	assert.Equal(models.StatusApproved, l.Status)

	// Second approval: reported, no second publication
	err = a.Approve(id)
	assert.ErrorIs(err, store.ErrAlreadyInStatus)
	assert.Len(pub.published, 1)
}

func TestApproveNotFound(t *testing.T) {
	a, _, _ := testApproval(t)
	assert.ErrorIs(t, a.Approve(4242), store.ErrNotFound)
}

func TestApproveDoesNotTransitionWhenPublishFails(t *testing.T) {
	assert := assert.New(t)
	a, pub, listings := testApproval(t)
	id := pendingListing(t, listings)
	pub.fail = true

	assert.Error(a.Approve(id))

	l, err := listings.Get(id)
	require.NoError(t, err)
	assert.Equal(models.StatusPending, l.Status, "failed publication leaves the listing pending")
}

func TestCaptionIncludesLicenseExcludesDeed(t *testing.T) {
	assert := assert.New(t)
	a, pub, listings := testApproval(t)
	id := pendingListing(t, listings)

	require.NoError(t, a.Approve(id))
	caption := pub.published[0]
	assert.Contains(caption, "1234567890", "license number is published")
	assert.NotContains(caption, "555666777", "deed number never appears")
	assert.Contains(caption, "Olaya")
	assert.Contains(caption, fmt.Sprintf("#%d", id))
}

func TestRejectIdempotent(t *testing.T) {
	assert := assert.New(t)
	a, pub, listings := testApproval(t)
	id := pendingListing(t, listings)

	require.NoError(t, a.Reject(id, "blurry photos"))
	l, _ := listings.Get(id)
	assert.Equal(models.StatusRejected, l.Status)
	require.Len(t, pub.notices[700], 1)
	assert.True(strings.Contains(pub.notices[700][0], "blurry photos"))

	// Second rejection: still rejected, no crash, no duplicate notice
	assert.NoError(a.Reject(id, "again"))
	assert.Len(pub.notices[700], 1)
}

func TestRejectDefaultsReason(t *testing.T) {
	a, pub, listings := testApproval(t)
	id := pendingListing(t, listings)

	require.NoError(t, a.Reject(id, "  "))
	require.Len(t, pub.notices[700], 1)
	assert.Contains(t, pub.notices[700][0], "not specified")
}

func TestApproveAfterRejectionNeverPublishes(t *testing.T) {
	assert := assert.New(t)
	a, pub, listings := testApproval(t)
	id := pendingListing(t, listings)

	require.NoError(t, a.Reject(id, "duplicate"))

	err := a.Approve(id)
	assert.ErrorIs(err, store.ErrBadTransition)
	assert.Empty(pub.published, "a rejected listing must never reach the channel")

	l, _ := listings.Get(id)
	assert.Equal(models.StatusRejected, l.Status)
}

func TestRejectAfterApproval(t *testing.T) {
	assert := assert.New(t)
	a, _, listings := testApproval(t)
	id := pendingListing(t, listings)

	require.NoError(t, a.Approve(id))
	assert.NoError(a.Reject(id, "listing withdrawn"))

	l, _ := listings.Get(id)
	assert.Equal(models.StatusRejected, l.Status)
}
