package models

import "drive/db"

type Team struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	Name        string `gorm:"type:varchar(100);index:uniq_team_name,unique"`
	CreatedByID *uint64
	CreatedBy   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

type TeamUser struct {
	ID     uint64 `gorm:"primaryKey"`
	TeamID uint64 `gorm:"index:uniq_team_user,unique"`
	Team   Team   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID uint64 `gorm:"index:uniq_team_user,unique"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func IsUserInTeam(userID, teamID uint64) bool {
	var count int64
	err := db.Instance.Model(&TeamUser{}).Where("user_id = ? and team_id = ?", userID, teamID).Count(&count).Error
	return err == nil && count > 0
}

func GetUserTeams(userID uint64) []uint64 {
	result := []uint64{}
	rows, err := db.Instance.Table("team_users").Select("team_id").Where("user_id = ?", userID).Rows()
	if err != nil {
		return result
	}
	defer rows.Close()
	for rows.Next() {
		var teamID uint64
		if rows.Scan(&teamID) == nil {
			result = append(result, teamID)
		}
	}
	return result
}
