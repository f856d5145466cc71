package handlers

import (
	"drive/acl"
	"drive/db"
	"drive/models"
	"drive/quota"
	"drive/storage"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type FolderCreateRequest struct {
	Name   string `form:"name" binding:"required"`
	Parent uint64 `form:"parent"`
}

type FileUploadRequest struct {
	Name     string `form:"name" binding:"required"`
	Parent   uint64 `form:"parent"`
	MimeType string `form:"mime_type"`
}

type FileIDRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

type FileListRequest struct {
	Folder uint64 `form:"folder"`
}

type FileInfo struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Owner    uint64 `json:"owner"`
	Parent   uint64 `json:"parent"`
	Folder   bool   `json:"folder"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Created  int64  `json:"created"`
}

func fileInfoFrom(f *models.File) FileInfo {
	info := FileInfo{
		ID:       f.ID,
		Name:     f.Name,
		Owner:    f.OwnerID,
		Folder:   f.Folder,
		Size:     f.Size,
		MimeType: f.MimeType,
		Created:  f.CreatedAt,
	}
	if f.ParentID != nil {
		info.Parent = *f.ParentID
	}
	return info
}

// checkParentFolder verifies the target folder exists, is a folder and is
// writable by the user. Returns nil for the root (parent = 0).
func checkParentFolder(c *gin.Context, user *models.User, parent uint64) (*uint64, bool) {
	if parent == 0 {
		return nil, true
	}
	folder, err := models.FileGetByID(parent)
	if err != nil || folder.Deleted || !folder.Folder {
		AbortWithError(c, acl.ErrNotFound)
		return nil, false
	}
	ok, err := acl.HasAccess(parent, user, models.AccessLevelWrite)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	if !ok {
		AbortWithError(c, acl.ErrForbidden)
		return nil, false
	}
	return &folder.ID, true
}

func FolderCreate(c *gin.Context, user *models.User) {
	r := FolderCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	parentID, ok := checkParentFolder(c, user, r.Parent)
	if !ok {
		return
	}
	folder := models.File{
		Name:     r.Name,
		OwnerID:  user.ID,
		ParentID: parentID,
		Folder:   true,
	}
	if err := db.Instance.Create(&folder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, fileInfoFrom(&folder))
}

// FileUpload stores the raw request body as a new file. The file lands in
// the default bucket under a random object key; quota is reserved up front
// and rolled back if the content write fails.
func FileUpload(c *gin.Context, user *models.User) {
	r := FileUploadRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	parentID, ok := checkParentFolder(c, user, r.Parent)
	if !ok {
		return
	}
	size := c.Request.ContentLength
	if size <= 0 {
		c.JSON(http.StatusBadRequest, Response{"Content-Length required"})
		return
	}
	bucket := storage.GetDefaultStorage()
	if bucket == nil {
		c.JSON(http.StatusInternalServerError, Response{"no storage configured"})
		return
	}
	if err := quota.VerifyAndReserveSpace(user.ID, size); err != nil {
		AbortWithError(c, err)
		return
	}
	key := uuid.NewString()
	path := key[0:2] + "/" + key
	written, err := bucket.Save(path, c.Request.Body)
	if err != nil || written != size {
		_ = bucket.Delete(path)
		_ = quota.ReleaseSpace(user.ID, size)
		c.JSON(http.StatusBadRequest, Response{"upload failed"})
		return
	}
	bucketID := bucket.GetBucket().ID
	file := models.File{
		Name:     r.Name,
		OwnerID:  user.ID,
		ParentID: parentID,
		Size:     size,
		MimeType: r.MimeType,
		Path:     path,
		BucketID: &bucketID,
	}
	if err := db.Instance.Create(&file).Error; err != nil {
		_ = bucket.Delete(path)
		_ = quota.ReleaseSpace(user.ID, size)
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, fileInfoFrom(&file))
}

func FileList(c *gin.Context, user *models.User) {
	r := FileListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	files := []models.File{}
	if r.Folder == 0 {
		// Top level: the user's own roots
		if err := db.Instance.Find(&files, "owner_id = ? and parent_id is null and deleted = ?", user.ID, false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, DBError1Response)
			return
		}
	} else {
		ok, err := acl.HasAccess(r.Folder, user, models.AccessLevelRead)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !ok {
			AbortWithError(c, acl.ErrForbidden)
			return
		}
		if err := db.Instance.Find(&files, "parent_id = ? and deleted = ?", r.Folder, false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, DBError1Response)
			return
		}
	}
	result := []FileInfo{}
	for i := range files {
		result = append(result, fileInfoFrom(&files[i]))
	}
	c.JSON(http.StatusOK, result)
}

func FileDownload(c *gin.Context, user *models.User) {
	r := FileIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	ok, err := acl.HasAccess(r.ID, user, models.AccessLevelRead)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !ok {
		AbortWithError(c, acl.ErrForbidden)
		return
	}
	file, err := models.FileGetByID(r.ID)
	if err != nil || file.Deleted || file.Folder || file.BucketID == nil {
		AbortWithError(c, acl.ErrNotFound)
		return
	}
	ServeFileContent(c, &file)
}

func FileDelete(c *gin.Context, user *models.User) {
	r := FileIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
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
	file, err := models.FileGetByID(r.ID)
	if err != nil || file.Deleted {
		AbortWithError(c, acl.ErrNotFound)
		return
	}
	if err := db.Instance.Model(&file).Update("deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if !file.Folder {
		// The owner paid for the space, give it back to them
		_ = quota.ReleaseSpace(file.OwnerID, file.Size)
		if file.BucketID != nil {
			if bucket := storage.GetStorageForBucket(*file.BucketID); bucket != nil {
				_ = bucket.Delete(file.Path)
			}
		}
	}
	c.JSON(http.StatusOK, OKResponse)
}

// ServeFileContent serves the file's content the cheapest way the bucket
// offers - for S3 that is a redirect to a presigned URL
func ServeFileContent(c *gin.Context, file *models.File) {
	bucket := storage.GetStorageForBucket(*file.BucketID)
	if bucket == nil {
		c.JSON(http.StatusInternalServerError, Response{"no storage configured"})
		return
	}
	setContentHeaders(c, file)
	bucket.Serve(file.Path, c.Request, c.Writer)
}

// StreamFileContent proxies the content through this server. Share-link
// downloads must go through here: a presigned URL would be reusable for its
// whole lifetime, sidestepping the link's password and download count.
func StreamFileContent(c *gin.Context, file *models.File) {
	bucket := storage.GetStorageForBucket(*file.BucketID)
	if bucket == nil {
		c.JSON(http.StatusInternalServerError, Response{"no storage configured"})
		return
	}
	setContentHeaders(c, file)
	c.Header("content-length", strconv.FormatInt(file.Size, 10))
	c.Status(http.StatusOK)
	if _, err := bucket.Load(file.Path, c.Writer); err != nil {
		// Headers are out already; all we can do is cut the stream short
		c.Abort()
	}
}

func setContentHeaders(c *gin.Context, file *models.File) {
	if file.MimeType != "" {
		c.Header("content-type", file.MimeType)
	}
	c.Header("content-disposition", `attachment; filename="`+file.Name+`"`)
}
