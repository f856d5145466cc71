package handlers

import (
	"drive/auth"
	"drive/db"
	"drive/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserCreateRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}
type UserLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}
type UserInfo struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	user, err := models.UserLogin(postReq.Email, postReq.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, Response{err.Error()})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(user.ID)
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name, "admin": user.Admin, "roles": user.RoleNames()})
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

func UserCreate(c *gin.Context, user *models.User) {
	postReq := UserCreateRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	created, err := models.UserCreate(postReq.Name, postReq.Email, postReq.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, UserInfo{ID: created.ID, Name: created.Name, Email: created.Email})
}

func UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name, "admin": user.Admin, "roles": user.RoleNames()})
}

func UserList(c *gin.Context, user *models.User) {
	rows, err := db.Instance.Table("users").Select("id, name, email").Order("created_at DESC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []UserInfo{}
	for rows.Next() {
		userInfo := UserInfo{}
		if err = rows.Scan(&userInfo.ID, &userInfo.Name, &userInfo.Email); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, userInfo)
	}
	c.JSON(http.StatusOK, result)
}
