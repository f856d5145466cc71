package models

import "drive/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&UserRole{})
	db.Instance.AutoMigrate(&Team{})
	db.Instance.AutoMigrate(&TeamUser{})
	db.Instance.AutoMigrate(&File{})
	db.Instance.AutoMigrate(&Grant{})
	db.Instance.AutoMigrate(&Quota{})
	db.Instance.AutoMigrate(&ShareLink{})
	db.Instance.AutoMigrate(&Comment{})
}
