package identity

import "time"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

var Roles = []string{RoleAdmin, RoleManager, RoleEmployee}

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	Department   *string    `json:"department"`
	Position     *string    `json:"position"`
	ManagerID    *int64     `json:"manager_id"`
	HireDate     *time.Time `json:"hire_date"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserPatch enumerates the mutable field set for generic updates. Protected
// fields (id, password_hash, created_at) have no representation here, so
// payloads carrying them are ignored at decode time. Role is applied only for
// admin callers; see the handler.
type UserPatch struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin manager employee"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	ManagerID  *int64  `json:"manager_id"`
	HireDate   *string `json:"hire_date"`
	IsActive   *bool   `json:"is_active"`
}

type NewUser struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	FirstName  string  `json:"first_name" validate:"required,max=50"`
	LastName   string  `json:"last_name" validate:"required,max=50"`
	Role       string  `json:"role" validate:"required,oneof=admin manager employee"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	ManagerID  *int64  `json:"manager_id"`
	HireDate   *string `json:"hire_date"`
}
