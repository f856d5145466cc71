package handlers

import (
	"drive/db"
	"drive/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type TeamCreateRequest struct {
	Name string `form:"name" binding:"required"`
}

type TeamMemberRequest struct {
	TeamID uint64 `form:"team_id" binding:"required"`
	UserID uint64 `form:"user_id" binding:"required"`
}

type RoleRequest struct {
	UserID uint64 `form:"user_id" binding:"required"`
	Name   string `form:"name" binding:"required"`
}

type TeamInfo struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TeamList returns the teams the calling user belongs to
func TeamList(c *gin.Context, user *models.User) {
	result := []TeamInfo{}
	teamIDs := models.GetUserTeams(user.ID)
	if len(teamIDs) > 0 {
		teams := []models.Team{}
		if err := db.Instance.Find(&teams, "id in ?", teamIDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, DBError1Response)
			return
		}
		for _, team := range teams {
			result = append(result, TeamInfo{ID: team.ID, Name: team.Name})
		}
	}
	c.JSON(http.StatusOK, result)
}

func TeamCreate(c *gin.Context, user *models.User) {
	r := TeamCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	team := models.Team{Name: r.Name, CreatedByID: &user.ID}
	if err := db.Instance.Create(&team).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": team.ID})
}

func TeamAddUser(c *gin.Context, user *models.User) {
	r := TeamMemberRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	member := models.TeamUser{TeamID: r.TeamID, UserID: r.UserID}
	if err := db.Instance.FirstOrCreate(&member, member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func TeamRemoveUser(c *gin.Context, user *models.User) {
	r := TeamMemberRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := db.Instance.Where("team_id = ? and user_id = ?", r.TeamID, r.UserID).Delete(&models.TeamUser{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func RoleAssign(c *gin.Context, user *models.User) {
	r := RoleRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	role := models.UserRole{UserID: r.UserID, Name: r.Name}
	if err := db.Instance.FirstOrCreate(&role, role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func RoleRemove(c *gin.Context, user *models.User) {
	r := RoleRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := db.Instance.Where("user_id = ? and name = ?", r.UserID, r.Name).Delete(&models.UserRole{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
