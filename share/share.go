// Package share issues and validates public share links. A valid token is
// the only credential an anonymous downloader presents - links bypass the
// acl resolver entirely.
package share

import (
	"drive/acl"
	"drive/db"
	"drive/models"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrExpired = errors.New("link expired")
	ErrInvalid = errors.New("link no longer valid")
)

// tokenAttempts bounds regeneration on token collision. Tokens carry 128
// bits of entropy, so more than one attempt indicates a broken RNG.
const tokenAttempts = 5

// CreateShareLink creates a link for the file, requiring the acting user to
// have write access. expiresAt of 0 means no expiry, maxDownloads of 0
// means unlimited, an empty password means none. Passwords are stored as a
// salted hash only.
func CreateShareLink(fileID uint64, acting *models.User, expiresAt int64, password string, maxDownloads int64) (models.ShareLink, error) {
	ok, err := acl.HasAccess(fileID, acting, models.AccessLevelWrite)
	if err != nil {
		return models.ShareLink{}, err
	}
	if !ok {
		return models.ShareLink{}, acl.ErrForbidden
	}
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		link := models.NewShareLink(acting.ID, fileID, expiresAt, maxDownloads)
		if password != "" {
			link.SetPassword(password)
		}
		var taken int64
		if err := db.Instance.Model(&models.ShareLink{}).Where("token = ?", link.Token).Count(&taken).Error; err != nil {
			return models.ShareLink{}, err
		}
		if taken > 0 {
			continue
		}
		if err := db.Instance.Create(&link).Error; err != nil {
			return models.ShareLink{}, err
		}
		return link, nil
	}
	return models.ShareLink{}, errors.New("could not generate a unique share token")
}

// GetLink loads a link by token without validating it.
func GetLink(token string) (link models.ShareLink, err error) {
	err = db.Instance.Where("token = ?", token).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = acl.ErrNotFound
	}
	return
}

// AccessViaLink resolves the file behind a token if the link is still
// valid. It does not count a download - callers gate the download here and
// then record it with RegisterDownloadViaLink.
func AccessViaLink(token string) (models.File, error) {
	link, err := GetLink(token)
	if err != nil {
		return models.File{}, err
	}
	if !link.IsValid() {
		if link.IsExpired() {
			return models.File{}, ErrExpired
		}
		return models.File{}, ErrInvalid
	}
	file, err := models.FileGetByID(link.FileID)
	if err != nil || file.Deleted {
		return models.File{}, acl.ErrNotFound
	}
	return file, nil
}

// RegisterDownloadViaLink bumps the download counter. The increment happens
// in SQL, so concurrent downloads can't lose counts; validity is not
// re-checked here (the access/register pair is two steps, and downloads
// racing the last slot may overshoot the limit by the in-flight amount).
func RegisterDownloadViaLink(token string) error {
	link, err := GetLink(token)
	if err != nil {
		return err
	}
	return db.Instance.Model(&link).UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}

// DeactivateLink turns a link off. Allowed for the link creator, the file
// owner and administrators.
func DeactivateLink(token string, acting *models.User) error {
	link, err := GetLink(token)
	if err != nil {
		return err
	}
	if link.UserID != acting.ID && !acting.Admin {
		file, err := models.FileGetByID(link.FileID)
		if err != nil || file.OwnerID != acting.ID {
			return acl.ErrForbidden
		}
	}
	return db.Instance.Model(&link).Update("active", false).Error
}
