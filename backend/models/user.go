package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username        string `gorm:"unique;not null"`
	Email           string `gorm:"unique;not null"`
	PasswordHash    string `gorm:"not null"`
	Role            string `gorm:"default:user"` // user, admin
	PhoneNumber     string
	GithubProfile   string
	LeetcodeProfile string
}
