package models

// Quota tracks how much storage a user is allowed and how much is in use.
// Rows are created lazily on the first reservation and never deleted.
type Quota struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	UpdatedAt  int64
	UserID     uint64 `gorm:"index:uniq_quota_user,unique"`
	User       User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TotalBytes int64  `gorm:"not null"`
	UsedBytes  int64  `gorm:"not null;default:0"`
}
