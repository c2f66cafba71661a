package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID int `db:"id"`

	Username string `db:"username"`
	Password string `db:"password"`
	Email    string `db:"email"`

	IsAdmin bool `db:"is_admin"`

	DateJoined time.Time  `db:"date_joined"`
	LastLogin  *time.Time `db:"last_login"`

	Name          string     `db:"name"`
	Bio           string     `db:"bio"`
	AvatarAssetID *uuid.UUID `db:"avatar_asset_id"`
}

func (u *User) BestName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
