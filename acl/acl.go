// Package acl answers "can this user do that to this file?".
//
// Access is resolved against the drive tree: a grant on a folder applies to
// everything inside it, transitively. Owners and administrators always have
// full access.
package acl

import (
	"drive/db"
	"drive/models"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("access denied")
)

// TeamDirectory resolves team membership. The default implementation reads
// the team_users table; tests and external identity sources can swap it.
type TeamDirectory interface {
	IsMember(userID uint64, teamID string) bool
}

type dbTeamDirectory struct{}

func (dbTeamDirectory) IsMember(userID uint64, teamID string) bool {
	id, err := strconv.ParseUint(teamID, 10, 64)
	if err != nil {
		return false
	}
	return models.IsUserInTeam(userID, id)
}

var Teams TeamDirectory = dbTeamDirectory{}

// maxWalkDepth bounds the parent walk. The tree is assumed acyclic; the
// bound keeps a corrupted parent chain from looping forever.
const maxWalkDepth = 100

// HasAccess reports whether user may act on the file at the required level.
// The check order is: ownership, administrator override, direct grants on
// the file, then the same check on each ancestor folder up to the root.
// Returns ErrNotFound if the file does not exist.
func HasAccess(fileID uint64, user *models.User, required models.AccessLevel) (bool, error) {
	file, err := models.FileGetByID(fileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	if user.Admin {
		return true, nil
	}
	visited := map[uint64]bool{}
	current := &file
	for depth := 0; depth < maxWalkDepth; depth++ {
		if visited[current.ID] {
			break
		}
		visited[current.ID] = true
		if current.OwnerID == user.ID {
			return true, nil
		}
		var grants []models.Grant
		if err := db.Instance.Find(&grants, "file_id = ?", current.ID).Error; err != nil {
			return false, err
		}
		for _, grant := range grants {
			if grantMatches(&grant, user) && grant.Level.Sufficient(required) {
				return true, nil
			}
		}
		if current.ParentID == nil {
			break
		}
		var parent models.File
		if err := db.Instance.First(&parent, "id = ?", *current.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling parent pointer - treat the node as a root
				break
			}
			return false, err
		}
		current = &parent
	}
	return false, nil
}

func grantMatches(grant *models.Grant, user *models.User) bool {
	switch grant.TargetType {
	case models.GrantTargetUser:
		return grant.TargetID == user.IDString()
	case models.GrantTargetRole:
		return user.HasRole(grant.TargetID)
	case models.GrantTargetTeam:
		return Teams.IsMember(user.ID, grant.TargetID)
	}
	return false
}

// GrantPermission sets the access level of a target on a file, replacing any
// previous grant for the same (file, target type, target id) tuple. The
// delete and insert run in one transaction so concurrent duplicate calls
// still leave exactly one row.
//
// No authorization check happens here - callers gate this on the grantor
// having write access (see RevokePermission, which does check; the asymmetry
// mirrors how the endpoints use the two operations).
func GrantPermission(fileID uint64, targetType models.GrantTarget, targetID string, level models.AccessLevel, grantor *models.User) error {
	if _, err := models.FileGetByID(fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ? and target_type = ? and target_id = ?", fileID, targetType, targetID).Delete(&models.Grant{}).Error; err != nil {
			return err
		}
		grant := models.Grant{
			GrantorID:  grantor.ID,
			FileID:     fileID,
			TargetType: targetType,
			TargetID:   targetID,
			Level:      level,
		}
		return tx.Create(&grant).Error
	})
}

// RevokePermission removes a grant. Only the file owner or an administrator
// may revoke. Revoking a grant that does not exist is a no-op.
func RevokePermission(fileID uint64, targetType models.GrantTarget, targetID string, acting *models.User) error {
	file, err := models.FileGetByID(fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if file.OwnerID != acting.ID && !acting.Admin {
		return ErrForbidden
	}
	return db.Instance.Where("file_id = ? and target_type = ? and target_id = ?", fileID, targetType, targetID).Delete(&models.Grant{}).Error
}
