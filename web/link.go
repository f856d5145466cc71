// Package web is the anonymous surface: share-link endpoints that need no
// session, gated only by the token (and its password, if set).
package web

import (
	"drive/handlers"
	"drive/share"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LinkView returns metadata about the shared file without using up a
// download.
func LinkView(c *gin.Context) {
	token := c.Param("token")
	file, err := share.AccessViaLink(token)
	if err != nil {
		handlers.AbortWithError(c, err)
		return
	}
	link, err := share.GetLink(token)
	if err != nil {
		handlers.AbortWithError(c, err)
		return
	}
	if link.HasPassword() && !link.CheckPassword(c.Query("password")) {
		c.JSON(http.StatusUnauthorized, handlers.Response{Error: "password required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":           file.Name,
		"size":           file.Size,
		"mime_type":      file.MimeType,
		"folder":         file.Folder,
		"expires_at":     link.ExpiresAt,
		"max_downloads":  link.MaxDownloads,
		"download_count": link.DownloadCount,
	})
}

// LinkDownload validates the link, records the download and serves the
// content. Validation and the counter bump are two steps; see
// share.RegisterDownloadViaLink.
func LinkDownload(c *gin.Context) {
	token := c.Param("token")
	file, err := share.AccessViaLink(token)
	if err != nil {
		handlers.AbortWithError(c, err)
		return
	}
	link, err := share.GetLink(token)
	if err != nil {
		handlers.AbortWithError(c, err)
		return
	}
	if link.HasPassword() && !link.CheckPassword(c.Query("password")) {
		c.JSON(http.StatusUnauthorized, handlers.Response{Error: "password required"})
		return
	}
	if file.Folder || file.BucketID == nil {
		c.JSON(http.StatusNotFound, handlers.Response{Error: "not downloadable"})
		return
	}
	if err := share.RegisterDownloadViaLink(token); err != nil {
		handlers.AbortWithError(c, err)
		return
	}
	handlers.StreamFileContent(c, &file)
}
