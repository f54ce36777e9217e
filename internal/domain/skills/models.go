package skills

import "time"

type Skill struct {
	ID               int64      `json:"id"`
	EmployeeID       int64      `json:"employee_id"`
	SkillName        string     `json:"skill_name"`
	ProficiencyLevel *int       `json:"proficiency_level"`
	Category         *string    `json:"category"`
	TargetLevel      *int       `json:"target_level"`
	LastAssessed     *time.Time `json:"last_assessed"`
	CreatedAt        time.Time  `json:"created_at"`
}

type NewSkill struct {
	SkillName        string  `json:"skill_name" validate:"required,max=100"`
	ProficiencyLevel *int    `json:"proficiency_level" validate:"omitempty,min=1,max=5"`
	Category         *string `json:"category" validate:"omitempty,max=50"`
	TargetLevel      *int    `json:"target_level" validate:"omitempty,min=1,max=5"`
	// EmployeeID is honored for managers assessing a direct report; everyone
	// else creates skills against themselves.
	EmployeeID *int64 `json:"employee_id"`
}

// SkillPatch enumerates the mutable fields for generic updates; id,
// employee_id and created_at are ignored when sent.
type SkillPatch struct {
	SkillName        *string `json:"skill_name" validate:"omitempty,max=100"`
	ProficiencyLevel *int    `json:"proficiency_level" validate:"omitempty,min=1,max=5"`
	Category         *string `json:"category" validate:"omitempty,max=50"`
	TargetLevel      *int    `json:"target_level" validate:"omitempty,min=1,max=5"`
	LastAssessed     *string `json:"last_assessed"`
}

// SkillUpdate is the typed form of SkillPatch applied by the store.
type SkillUpdate struct {
	SkillName        *string
	ProficiencyLevel *int
	Category         *string
	TargetLevel      *int
	LastAssessed     *time.Time
}
