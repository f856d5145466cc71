package auth

import (
	"drive/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// User is authenticated and passed explicitly to the handler
type HandlerFunc func(c *gin.Context, user *models.User)

// Check is an extra requirement on the logged-in user
type Check func(user *models.User) bool

func AdminOnly(user *models.User) bool {
	return user.Admin
}

// Router is a wrapper class that adds auth checks + User pre-loading
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, checks []Check) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	for _, check := range checks {
		if !check(&user) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
			return
		}
	}
	handler(c, &user)
}

func (cr *Router) POST(path string, handler HandlerFunc, checks ...Check) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, checks)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, checks ...Check) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, checks)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, checks ...Check) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, checks)
	})
}
