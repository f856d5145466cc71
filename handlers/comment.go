package handlers

import (
	"drive/collab"
	"drive/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type CommentAddRequest struct {
	FileID  uint64 `form:"file_id" binding:"required"`
	Content string `form:"content" binding:"required"`
	Parent  uint64 `form:"parent"`
}

type CommentIDRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

type CommentInfo struct {
	ID      uint64 `json:"id"`
	Author  uint64 `json:"author"`
	Parent  uint64 `json:"parent"`
	Content string `json:"content"`
	Created int64  `json:"created"`
}

func CommentAdd(c *gin.Context, user *models.User) {
	r := CommentAddRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	comment, err := collab.AddComment(r.FileID, user, r.Content, r.Parent)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CommentInfo{
		ID:      comment.ID,
		Author:  comment.UserID,
		Parent:  comment.ParentCommentID,
		Content: comment.Content,
		Created: comment.CreatedAt,
	})
}

func CommentList(c *gin.Context, user *models.User) {
	r := FileIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	comments, err := collab.GetComments(r.ID, user)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	result := []CommentInfo{}
	for _, comment := range comments {
		result = append(result, CommentInfo{
			ID:      comment.ID,
			Author:  comment.UserID,
			Parent:  comment.ParentCommentID,
			Content: comment.Content,
			Created: comment.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}

func CommentDelete(c *gin.Context, user *models.User) {
	r := CommentIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := collab.DeleteComment(r.ID, user); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
