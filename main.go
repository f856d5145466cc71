package main

import (
	"log"
	"strings"
	"time"

	"drive/auth"
	"drive/config"
	"drive/db"
	"drive/handlers"
	"drive/models"
	"drive/storage"
	"drive/utils"
	"drive/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/file/download", "/s/"})))
	}
	router.Use((&utils.CacheRouter{}).Handler()) // No cache by default, individual end-points can override that
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/login", handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	authRouter.POST("/user/create", handlers.UserCreate, auth.AdminOnly)
	authRouter.GET("/user/status", handlers.UserGetStatus)
	authRouter.GET("/user/list", handlers.UserList)
	// File and folder handlers
	authRouter.POST("/folder/create", handlers.FolderCreate)
	authRouter.PUT("/file/upload", handlers.FileUpload)
	authRouter.GET("/file/list", handlers.FileList)
	authRouter.GET("/file/download", handlers.FileDownload)
	authRouter.POST("/file/delete", handlers.FileDelete)
	// Permission handlers
	authRouter.POST("/grant/set", handlers.GrantCreate)
	authRouter.POST("/grant/revoke", handlers.GrantRevoke)
	authRouter.GET("/grant/list", handlers.GrantList)
	// Share link handlers
	authRouter.POST("/share/create", handlers.ShareCreate)
	authRouter.POST("/share/deactivate", handlers.ShareDeactivate)
	authRouter.GET("/share/list", handlers.ShareList)
	// Comment handlers
	authRouter.POST("/comment/add", handlers.CommentAdd)
	authRouter.GET("/comment/list", handlers.CommentList)
	authRouter.POST("/comment/delete", handlers.CommentDelete)
	// Quota handlers
	authRouter.GET("/quota", handlers.QuotaGet)
	authRouter.POST("/quota/set", handlers.QuotaSet, auth.AdminOnly)
	// Team and role handlers
	authRouter.GET("/team/list", handlers.TeamList)
	authRouter.POST("/team/create", handlers.TeamCreate, auth.AdminOnly)
	authRouter.POST("/team/add", handlers.TeamAddUser, auth.AdminOnly)
	authRouter.POST("/team/remove", handlers.TeamRemoveUser, auth.AdminOnly)
	authRouter.POST("/role/assign", handlers.RoleAssign, auth.AdminOnly)
	authRouter.POST("/role/remove", handlers.RoleRemove, auth.AdminOnly)

	/*
	 *	Anonymous share-link interface
	 */
	router.GET("/s/:token", web.LinkView)
	router.GET("/s/:token/download", web.LinkDownload)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
