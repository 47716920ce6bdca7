package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string    `gorm:"default:''"`
	Name                string    `gorm:"default:''"`
	Email               string    `gorm:"unique;not null"`
	Mobile              string    `gorm:"default:''"`
	Role                string    `gorm:"default:'LEARNER'"` // LEARNER, INSTRUCTOR, ADMIN
	Password            string    `gorm:"not null"`
	TotalPoints         uint      `gorm:"default:0"` // only ever increases, only via the badge ledger
	BadgeLevel          string    `gorm:"default:'Newbie'"`
	LastLogin           time.Time `gorm:"default:NULL"`
	FailedLoginAttempts int       `gorm:"default:0"`
	IsBlocked           bool      `gorm:"default:false"`
	IsDeleted           bool      `gorm:"default:false"`
}
