package moderation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Listing{}, &models.Offender{}))
	return db
}

func TestLedgerBasics(t *testing.T) {
	assert := assert.New(t)
	ledger := NewLedger(testDB(t))

	c, err := ledger.Count(101)
	assert.NoError(err)
	assert.Equal(0, c)

	c, err = ledger.RecordViolation(101, "off-topic")
	assert.NoError(err)
	assert.Equal(1, c)

	c, err = ledger.RecordViolation(101, "outside-region")
	assert.NoError(err)
	assert.Equal(2, c)

	c, err = ledger.Count(101)
	assert.NoError(err)
	assert.Equal(2, c)

	// Other users are independent
	c, err = ledger.RecordViolation(202, "off-topic")
	assert.NoError(err)
	assert.Equal(1, c)

	var off models.Offender
	require.NoError(t, ledger.db.First(&off, "user_id = ?", 101).Error)
	assert.Equal("outside-region", off.LastReason)
	assert.False(off.UpdatedAt.IsZero())
}

func TestLedgerConcurrentIncrements(t *testing.T) {
	assert := assert.New(t)
	ledger := NewLedger(testDB(t))

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := ledger.RecordViolation(303, "off-topic")
			assert.NoError(err)
		}()
	}
	wg.Wait()

	c, err := ledger.Count(303)
	assert.NoError(err)
	assert.Equal(n, c, "no increments may be lost")
}
