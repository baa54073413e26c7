package accounts

import "time"

type User struct {
	Id           int       `json:"id" validate:"required"`
	Username     string    `json:"username" validate:"required"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	IsInstructor bool      `json:"is_instructor"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Roles returns names of role flags which are set.
func (u User) Roles() []string {
	roles := []string{}
	if u.IsSuperuser {
		roles = append(roles, "superuser")
	}
	if u.IsInstructor {
		roles = append(roles, "instructor")
	}
	if !u.IsActive {
		roles = append(roles, "inactive")
	}
	return roles
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	Access  string `json:"access" validate:"required"`
	Refresh string `json:"refresh" validate:"required"`
}

type Registration struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FullName        string `json:"full_name,omitempty"`
}
