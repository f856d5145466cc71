// Package collab holds the collaboration features that piggyback on file
// access - currently threaded comments.
package collab

import (
	"drive/acl"
	"drive/db"
	"drive/models"
	"errors"

	"gorm.io/gorm"
)

// AddComment attaches a comment to a file. Requires read access. A non-zero
// parentCommentID makes it a threaded reply; the parent must belong to the
// same file.
func AddComment(fileID uint64, author *models.User, content string, parentCommentID uint64) (models.Comment, error) {
	ok, err := acl.HasAccess(fileID, author, models.AccessLevelRead)
	if err != nil {
		return models.Comment{}, err
	}
	if !ok {
		return models.Comment{}, acl.ErrForbidden
	}
	if parentCommentID != 0 {
		var parent models.Comment
		if err := db.Instance.First(&parent, "id = ? and file_id = ?", parentCommentID, fileID).Error; err != nil {
			return models.Comment{}, acl.ErrNotFound
		}
	}
	comment := models.Comment{
		UserID:          author.ID,
		FileID:          fileID,
		ParentCommentID: parentCommentID,
		Content:         content,
	}
	return comment, db.Instance.Create(&comment).Error
}

// GetComments lists the live comments on a file. Requires read access.
func GetComments(fileID uint64, user *models.User) ([]models.Comment, error) {
	ok, err := acl.HasAccess(fileID, user, models.AccessLevelRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, acl.ErrForbidden
	}
	comments := []models.Comment{}
	err = db.Instance.Where("file_id = ? and deleted = ?", fileID, false).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// DeleteComment soft-deletes a comment. Only the comment's author or an
// administrator may delete - ownership of the file doesn't count here.
func DeleteComment(commentID uint64, acting *models.User) error {
	var comment models.Comment
	err := db.Instance.First(&comment, "id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return acl.ErrNotFound
	}
	if err != nil {
		return err
	}
	if comment.UserID != acting.ID && !acting.Admin {
		return acl.ErrForbidden
	}
	return db.Instance.Model(&comment).Update("deleted", true).Error
}
