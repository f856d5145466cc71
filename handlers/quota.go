package handlers

import (
	"drive/models"
	"drive/quota"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type QuotaInfo struct {
	TotalBytes int64 `json:"total_bytes"`
	UsedBytes  int64 `json:"used_bytes"`
}

type QuotaSetRequest struct {
	UserID     uint64 `form:"user_id" binding:"required"`
	TotalBytes int64  `form:"total_bytes" binding:"required"`
}

func QuotaGet(c *gin.Context, user *models.User) {
	record, err := quota.GetQuota(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, QuotaInfo{TotalBytes: record.TotalBytes, UsedBytes: record.UsedBytes})
}

// QuotaSet resizes a user's quota (administrators only, enforced by the router)
func QuotaSet(c *gin.Context, user *models.User) {
	r := QuotaSetRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := quota.SetTotal(r.UserID, r.TotalBytes); err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
