package models

import "time"

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Role ids seeded by the schema bootstrap. Sign-ups get RoleRegular.
const (
	RoleAdmin   int64 = 0
	RoleRegular int64 = 1
)

type User struct {
	ID        int64     `db:"id" json:"userId"`
	Username  string    `db:"username" json:"username"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name" json:"lastName"`
	Password  string    `db:"password_hash" json:"-"`
	RoleID    int64     `db:"role_id" json:"roleId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
