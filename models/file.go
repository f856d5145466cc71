package models

import "drive/db"

// File is a node in the drive tree - either a regular file or a folder.
// Files with no parent are roots.
type File struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(300)"`
	OwnerID   uint64 `gorm:"not null;index"`
	Owner     User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ParentID  *uint64
	Parent    *File  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Folder    bool   `gorm:"not null;default:false"`
	Size      int64  `gorm:"not null;default:0"` // bytes; always 0 for folders
	MimeType  string `gorm:"type:varchar(100)"`
	Path      string `gorm:"type:varchar(300)"` // object key within the bucket; empty for folders
	BucketID  *uint64
	Deleted   bool `gorm:"not null;default:false"`
}

func FileGetByID(id uint64) (f File, err error) {
	err = db.Instance.First(&f, "id = ?", id).Error
	return
}
