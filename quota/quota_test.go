package quota

import (
	"drive/config"
	"drive/db"
	"drive/models"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
)

func TestMain(m *testing.M) {
	config.MYSQL_DSN = ""
	config.SQLITE_FILE = "file::memory:?cache=shared"
	db.Init()
	models.Init()
	os.Exit(m.Run())
}

var userSeq = 0

func makeUser(t *testing.T) *models.User {
	t.Helper()
	userSeq++
	user, err := models.UserCreate(fmt.Sprintf("user%d", userSeq), fmt.Sprintf("user%d@quota.test", userSeq), "pass")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return &user
}

func usedBytes(t *testing.T, userID uint64) int64 {
	t.Helper()
	record, err := GetQuota(userID)
	if err != nil {
		t.Fatalf("GetQuota: %v", err)
	}
	return record.UsedBytes
}

func TestLazyDefaultOnFirstReserve(t *testing.T) {
	user := makeUser(t)
	if err := VerifyAndReserveSpace(user.ID, 100); err != nil {
		t.Fatalf("VerifyAndReserveSpace: %v", err)
	}
	var record models.Quota
	if err := db.Instance.Where("user_id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatalf("quota row was not created: %v", err)
	}
	if record.TotalBytes != config.DEFAULT_QUOTA {
		t.Errorf("expected default total %d, got %d", config.DEFAULT_QUOTA, record.TotalBytes)
	}
	if record.UsedBytes != 100 {
		t.Errorf("expected used 100, got %d", record.UsedBytes)
	}
}

func TestGetQuotaHasNoSideEffects(t *testing.T) {
	user := makeUser(t)
	record, err := GetQuota(user.ID)
	if err != nil {
		t.Fatalf("GetQuota: %v", err)
	}
	if record.TotalBytes != config.DEFAULT_QUOTA || record.UsedBytes != 0 {
		t.Errorf("unexpected defaults: %+v", record)
	}
	var count int64
	db.Instance.Model(&models.Quota{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("GetQuota persisted a quota row")
	}
}

func TestReserveAndExceed(t *testing.T) {
	user := makeUser(t)
	if err := SetTotal(user.ID, 1000); err != nil {
		t.Fatalf("SetTotal: %v", err)
	}
	if err := VerifyAndReserveSpace(user.ID, 900); err != nil {
		t.Fatalf("reserving 900: %v", err)
	}
	if err := VerifyAndReserveSpace(user.ID, 50); err != nil {
		t.Fatalf("reserving 50: %v", err)
	}
	if got := usedBytes(t, user.ID); got != 950 {
		t.Fatalf("expected used 950, got %d", got)
	}
	err := VerifyAndReserveSpace(user.ID, 100)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	// A failed reservation must not change state
	if got := usedBytes(t, user.ID); got != 950 {
		t.Errorf("used changed after rejected reservation: %d", got)
	}
	// An exact fit still goes through
	if err := VerifyAndReserveSpace(user.ID, 50); err != nil {
		t.Errorf("reserving the exact remainder failed: %v", err)
	}
}

func TestReleaseFloorsAtZero(t *testing.T) {
	user := makeUser(t)
	if err := VerifyAndReserveSpace(user.ID, 500); err != nil {
		t.Fatalf("VerifyAndReserveSpace: %v", err)
	}
	if err := ReleaseSpace(user.ID, 200); err != nil {
		t.Fatalf("ReleaseSpace: %v", err)
	}
	if got := usedBytes(t, user.ID); got != 300 {
		t.Fatalf("expected used 300, got %d", got)
	}
	if err := ReleaseSpace(user.ID, 10000); err != nil {
		t.Fatalf("ReleaseSpace: %v", err)
	}
	if got := usedBytes(t, user.ID); got != 0 {
		t.Errorf("used went below zero: %d", got)
	}
}

func TestReleaseWithoutRecordIsNoop(t *testing.T) {
	user := makeUser(t)
	if err := ReleaseSpace(user.ID, 100); err != nil {
		t.Fatalf("ReleaseSpace: %v", err)
	}
	var count int64
	db.Instance.Model(&models.Quota{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("ReleaseSpace created a quota row")
	}
}

func TestConcurrentReservations(t *testing.T) {
	user := makeUser(t)
	if err := SetTotal(user.ID, 1000); err != nil {
		t.Fatalf("SetTotal: %v", err)
	}
	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if VerifyAndReserveSpace(user.ID, 100) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if succeeded != 10 {
		t.Errorf("expected exactly 10 of %d reservations to pass, got %d", workers, succeeded)
	}
	if got := usedBytes(t, user.ID); got != 1000 {
		t.Errorf("final used %d exceeds or undershoots total", got)
	}
}
