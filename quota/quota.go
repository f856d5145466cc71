// Package quota is the per-user storage ledger. Space is reserved before
// file content is written and released when files are deleted or an upload
// is rolled back.
package quota

import (
	"drive/config"
	"drive/db"
	"drive/models"
	"errors"
	"strconv"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"gorm.io/gorm"
)

var ErrQuotaExceeded = errors.New("quota exceeded")

// One mutex per user serializes the check-and-increment, so two concurrent
// uploads can't both pass the check against the same stale used value.
var userLocks = cmap.New[*sync.Mutex]()

func lockFor(userID uint64) *sync.Mutex {
	key := strconv.FormatUint(userID, 10)
	if mutex, ok := userLocks.Get(key); ok {
		return mutex
	}
	userLocks.SetIfAbsent(key, &sync.Mutex{})
	mutex, _ := userLocks.Get(key)
	return mutex
}

// VerifyAndReserveSpace adds sizeBytes to the user's usage if it fits,
// creating the quota row with the default total on first use. On
// ErrQuotaExceeded nothing is reserved.
func VerifyAndReserveSpace(userID uint64, sizeBytes int64) error {
	mutex := lockFor(userID)
	mutex.Lock()
	defer mutex.Unlock()

	record, err := fetchOrCreate(userID)
	if err != nil {
		return err
	}
	if record.UsedBytes+sizeBytes > record.TotalBytes {
		return ErrQuotaExceeded
	}
	return db.Instance.Model(&record).Update("used_bytes", record.UsedBytes+sizeBytes).Error
}

// ReleaseSpace subtracts sizeBytes from the user's usage, flooring at zero.
// Releasing against a user with no quota row is a no-op.
func ReleaseSpace(userID uint64, sizeBytes int64) error {
	mutex := lockFor(userID)
	mutex.Lock()
	defer mutex.Unlock()

	var record models.Quota
	err := db.Instance.Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	newUsed := record.UsedBytes - sizeBytes
	if newUsed < 0 {
		newUsed = 0
	}
	return db.Instance.Model(&record).Update("used_bytes", newUsed).Error
}

// GetQuota returns the user's quota, or an unpersisted default record if
// none exists yet. Reading never creates the row.
func GetQuota(userID uint64) (models.Quota, error) {
	var record models.Quota
	err := db.Instance.Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Quota{UserID: userID, TotalBytes: config.DEFAULT_QUOTA}, nil
	}
	return record, err
}

// SetTotal resizes a user's quota, creating the row if needed. Shrinking
// below current usage is allowed - the user just can't upload until usage
// drops back under the new total.
func SetTotal(userID uint64, totalBytes int64) error {
	mutex := lockFor(userID)
	mutex.Lock()
	defer mutex.Unlock()

	record, err := fetchOrCreate(userID)
	if err != nil {
		return err
	}
	return db.Instance.Model(&record).Update("total_bytes", totalBytes).Error
}

func fetchOrCreate(userID uint64) (models.Quota, error) {
	var record models.Quota
	err := db.Instance.Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.Quota{UserID: userID, TotalBytes: config.DEFAULT_QUOTA}
		err = db.Instance.Create(&record).Error
	}
	return record, err
}
