package models

type Comment struct {
	ID              uint64 `gorm:"primaryKey"`
	CreatedAt       int64
	UserID          uint64
	User            User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FileID          uint64 `gorm:"index"`
	File            File   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ParentCommentID uint64
	ParentComment   *Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content         string   `gorm:"type:text"`
	Deleted         bool     `gorm:"not null;default:false"`
}
