package handlers

import (
	"drive/db"
	"drive/models"
	"drive/share"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ShareCreateRequest struct {
	FileID       uint64 `form:"file_id" binding:"required"`
	Expires      int64  `form:"expires"` // seconds from now, 0 = never
	Password     string `form:"password"`
	MaxDownloads int64  `form:"max_downloads"`
}

type ShareTokenRequest struct {
	Token string `form:"token" binding:"required"`
}

type ShareInfo struct {
	Token         string `json:"token"`
	FileID        uint64 `json:"file_id"`
	ExpiresAt     int64  `json:"expires_at"`
	MaxDownloads  int64  `json:"max_downloads"`
	DownloadCount int64  `json:"download_count"`
	Protected     bool   `json:"protected"`
	Active        bool   `json:"active"`
}

func shareInfoFrom(link *models.ShareLink) ShareInfo {
	return ShareInfo{
		Token:         link.Token,
		FileID:        link.FileID,
		ExpiresAt:     link.ExpiresAt,
		MaxDownloads:  link.MaxDownloads,
		DownloadCount: link.DownloadCount,
		Protected:     link.HasPassword(),
		Active:        link.Active,
	}
}

func ShareCreate(c *gin.Context, user *models.User) {
	r := ShareCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	expiresAt := int64(0)
	if r.Expires > 0 {
		expiresAt = time.Now().Unix() + r.Expires
	}
	link, err := share.CreateShareLink(r.FileID, user, expiresAt, r.Password, r.MaxDownloads)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, shareInfoFrom(&link))
}

func ShareDeactivate(c *gin.Context, user *models.User) {
	r := ShareTokenRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := share.DeactivateLink(r.Token, user); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// ShareList returns the links the user created
func ShareList(c *gin.Context, user *models.User) {
	links := []models.ShareLink{}
	if err := db.Instance.Find(&links, "user_id = ?", user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []ShareInfo{}
	for i := range links {
		result = append(result, shareInfoFrom(&links[i]))
	}
	c.JSON(http.StatusOK, result)
}
