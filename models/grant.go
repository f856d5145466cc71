package models

type GrantTarget uint8

const (
	GrantTargetUser GrantTarget = 0
	GrantTargetRole GrantTarget = 1
	GrantTargetTeam GrantTarget = 2
)

type AccessLevel uint8

const (
	AccessLevelRead  AccessLevel = 1
	AccessLevelWrite AccessLevel = 2
	AccessLevelAdmin AccessLevel = 3
)

// Sufficient reports whether a granted level covers the required one.
// Levels are totally ordered: ADMIN > WRITE > READ.
func (l AccessLevel) Sufficient(required AccessLevel) bool {
	return l >= required
}

func (l AccessLevel) String() string {
	switch l {
	case AccessLevelRead:
		return "read"
	case AccessLevelWrite:
		return "write"
	case AccessLevelAdmin:
		return "admin"
	}
	return "none"
}

// Grant gives a target (user, role or team) an access level on a file or
// folder. Folder grants are inherited by everything below the folder.
// At most one grant exists per (file, target type, target id).
type Grant struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	GrantorID  uint64
	Grantor    User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	FileID     uint64      `gorm:"index:uniq_file_target,unique"`
	File       File        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TargetType GrantTarget `gorm:"index:uniq_file_target,unique"`
	TargetID   string      `gorm:"type:varchar(100);index:uniq_file_target,unique"`
	Level      AccessLevel `gorm:"not null"`
}
