package model

import "time"

type User struct {
	UserID    string    `firestore:"userid,omitempty" db:"user_id" json:"id"`
	Name      string    `firestore:"name,omitempty" db:"name" json:"name"`
	Username  string    `firestore:"username,omitempty" db:"username" json:"username"`
	Email     string    `firestore:"email,omitempty" db:"email" json:"email"`
	Password  string    `firestore:"password,omitempty" db:"password" json:"-"`
	Role      string    `firestore:"role,omitempty" db:"role" json:"role"` // "admin", "manager" หรือ "salesperson"
	Branch    string    `firestore:"branch,omitempty" db:"branch" json:"branch,omitempty"`
	IsActive  bool      `firestore:"isactive" db:"is_active" json:"isActive"`
	CreatedAt time.Time `firestore:"createdat,omitempty" db:"created_at" json:"createdAt"`
}
