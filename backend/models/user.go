package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username         string `gorm:"unique;not null" json:"username"`
	Email            string `gorm:"unique;not null" json:"email"`
	PasswordHash     string `gorm:"not null" json:"-"`
	Role             string `gorm:"default:member" json:"role"` // member, admin
	IsActive         bool   `gorm:"default:true" json:"isActive"`
	AccessibleLevels string `json:"-"` // JSON array of level numbers
	LastActive       time.Time
}

// AccessibleLevelNumbers decodes the stored JSON array. An empty or
// malformed column yields no accessible levels.
func (u *User) AccessibleLevelNumbers() []int {
	if u.AccessibleLevels == "" {
		return nil
	}
	var levels []int
	if err := json.Unmarshal([]byte(u.AccessibleLevels), &levels); err != nil {
		return nil
	}
	return levels
}

func (u *User) SetAccessibleLevels(levels []int) {
	encoded, err := json.Marshal(levels)
	if err != nil {
		return
	}
	u.AccessibleLevels = string(encoded)
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
