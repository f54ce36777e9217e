package goals

import "time"

const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Goal struct {
	ID              int64      `json:"id"`
	EmployeeID      int64      `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category"`
	TargetDate      *time.Time `json:"target_date"`
	Status          string     `json:"status"`
	Progress        int        `json:"progress"`
	ManagerApproved bool       `json:"manager_approved"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type NewGoal struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	TargetDate  *string `json:"target_date"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft active completed cancelled"`
	Progress    *int    `json:"progress" validate:"omitempty,min=0,max=100"`
}

// GoalPatch enumerates the mutable fields for generic updates; id,
// employee_id and created_at have no representation and are ignored when sent.
type GoalPatch struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	TargetDate  *string `json:"target_date"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft active completed cancelled"`
	Progress    *int    `json:"progress" validate:"omitempty,min=0,max=100"`
}

// GoalUpdate is the typed form of GoalPatch applied by the store.
type GoalUpdate struct {
	Title       *string
	Description *string
	Category    *string
	TargetDate  *time.Time
	Status      *string
	Progress    *int
}
