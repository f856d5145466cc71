package models

import (
	"drive/utils"
	"time"
)

// ShareLink grants anonymous, token-based access to a single file,
// optionally bounded by an expiry time, a download count and a password.
type ShareLink struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UserID        uint64 `gorm:"not null"`
	User          User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FileID        uint64 `gorm:"not null"`
	File          File   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Token         string `gorm:"type:varchar(100);index:uniq_token,unique"`
	ExpiresAt     int64  `gorm:"not null"` // 0 indicates no expiration
	PasswordHash  string `gorm:"type:varchar(128)"`
	PasswordSalt  string `gorm:"type:varchar(200)"`
	MaxDownloads  int64  `gorm:"not null"` // 0 indicates no limit
	DownloadCount int64  `gorm:"not null;default:0"`
	Active        bool   `gorm:"not null;default:true"`
}

func NewShareLink(userID, fileID uint64, expiresAt int64, maxDownloads int64) ShareLink {
	return ShareLink{
		UserID:       userID,
		FileID:       fileID,
		Token:        utils.Rand16BytesToBase62(),
		ExpiresAt:    expiresAt,
		MaxDownloads: maxDownloads,
		Active:       true,
	}
}

// SetPassword stores a salted hash of the password, never the clear text
func (s *ShareLink) SetPassword(plainTextPassword string) {
	s.PasswordSalt = utils.RandSalt(saltSize)
	s.PasswordHash = utils.Sha512String(plainTextPassword + s.PasswordSalt)
}

func (s *ShareLink) HasPassword() bool {
	return s.PasswordHash != ""
}

func (s *ShareLink) CheckPassword(plainTextPassword string) bool {
	if !s.HasPassword() {
		return true
	}
	return s.PasswordHash == utils.Sha512String(plainTextPassword+s.PasswordSalt)
}

// IsValid implements the link validity predicate: the link must be active,
// not past its expiry and not past its download limit.
func (s *ShareLink) IsValid() bool {
	if !s.Active {
		return false
	}
	if s.ExpiresAt > 0 && time.Now().Unix() >= s.ExpiresAt {
		return false
	}
	if s.MaxDownloads > 0 && s.DownloadCount >= s.MaxDownloads {
		return false
	}
	return true
}

// IsExpired tells apart a time-expired link from other invalid states
func (s *ShareLink) IsExpired() bool {
	return s.ExpiresAt > 0 && time.Now().Unix() >= s.ExpiresAt
}
