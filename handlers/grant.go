package handlers

import (
	"drive/acl"
	"drive/db"
	"drive/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type GrantRequest struct {
	FileID     uint64 `form:"file_id" binding:"required"`
	TargetType uint8  `form:"target_type"`
	TargetID   string `form:"target_id" binding:"required"`
	Level      uint8  `form:"level"`
}

type GrantRevokeRequest struct {
	FileID     uint64 `form:"file_id" binding:"required"`
	TargetType uint8  `form:"target_type"`
	TargetID   string `form:"target_id" binding:"required"`
}

type GrantInfo struct {
	TargetType uint8  `json:"target_type"`
	TargetID   string `json:"target_id"`
	Level      string `json:"level"`
	Grantor    uint64 `json:"grantor"`
	Created    int64  `json:"created"`
}

func validTarget(t uint8) bool {
	return t <= uint8(models.GrantTargetTeam)
}

func validLevel(l uint8) bool {
	return l >= uint8(models.AccessLevelRead) && l <= uint8(models.AccessLevelAdmin)
}

// GrantCreate sets a grant. The write-access precondition lives here, not
// in acl.GrantPermission.
func GrantCreate(c *gin.Context, user *models.User) {
	r := GrantRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if !validTarget(r.TargetType) || !validLevel(r.Level) {
		c.JSON(http.StatusBadRequest, NopeResponse)
		return
	}
	ok, err := acl.HasAccess(r.FileID, user, models.AccessLevelWrite)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !ok {
		AbortWithError(c, acl.ErrForbidden)
		return
	}
	err = acl.GrantPermission(r.FileID, models.GrantTarget(r.TargetType), r.TargetID, models.AccessLevel(r.Level), user)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func GrantRevoke(c *gin.Context, user *models.User) {
	r := GrantRevokeRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	err := acl.RevokePermission(r.FileID, models.GrantTarget(r.TargetType), r.TargetID, user)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func GrantList(c *gin.Context, user *models.User) {
	r := FileIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	ok, err := acl.HasAccess(r.ID, user, models.AccessLevelWrite)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !ok {
		AbortWithError(c, acl.ErrForbidden)
		return
	}
	grants := []models.Grant{}
	if err := db.Instance.Find(&grants, "file_id = ?", r.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []GrantInfo{}
	for _, grant := range grants {
		result = append(result, GrantInfo{
			TargetType: uint8(grant.TargetType),
			TargetID:   grant.TargetID,
			Level:      grant.Level.String(),
			Grantor:    grant.GrantorID,
			Created:    grant.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}
