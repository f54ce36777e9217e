package reviews

import "time"

const (
	TypeSelf    = "self"
	TypePeer    = "peer"
	TypeManager = "manager"

	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusCompleted = "completed"
)

type Review struct {
	ID                  int64     `json:"id"`
	RevieweeID          int64     `json:"reviewee_id"`
	RevieweeName        string    `json:"reviewee_name"`
	ReviewerID          int64     `json:"reviewer_id"`
	ReviewerName        string    `json:"reviewer_name"`
	ReviewType          string    `json:"review_type"`
	ReviewPeriod        *string   `json:"review_period"`
	OverallRating       *int      `json:"overall_rating"`
	TechnicalSkills     *int      `json:"technical_skills"`
	Communication       *int      `json:"communication"`
	Leadership          *int      `json:"leadership"`
	Teamwork            *int      `json:"teamwork"`
	Comments            *string   `json:"comments"`
	Strengths           *string   `json:"strengths"`
	AreasForImprovement *string   `json:"areas_for_improvement"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type NewReview struct {
	RevieweeID          int64   `json:"reviewee_id" validate:"required"`
	ReviewType          string  `json:"review_type" validate:"required,oneof=self peer manager"`
	ReviewPeriod        *string `json:"review_period" validate:"omitempty,max=20"`
	OverallRating       *int    `json:"overall_rating" validate:"omitempty,min=1,max=5"`
	TechnicalSkills     *int    `json:"technical_skills" validate:"omitempty,min=1,max=5"`
	Communication       *int    `json:"communication" validate:"omitempty,min=1,max=5"`
	Leadership          *int    `json:"leadership" validate:"omitempty,min=1,max=5"`
	Teamwork            *int    `json:"teamwork" validate:"omitempty,min=1,max=5"`
	Comments            *string `json:"comments"`
	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
}

// ReviewPatch enumerates the mutable fields for generic updates. The subject,
// the author and the review type are fixed at creation; payloads carrying
// them are ignored.
type ReviewPatch struct {
	ReviewPeriod        *string `json:"review_period" validate:"omitempty,max=20"`
	OverallRating       *int    `json:"overall_rating" validate:"omitempty,min=1,max=5"`
	TechnicalSkills     *int    `json:"technical_skills" validate:"omitempty,min=1,max=5"`
	Communication       *int    `json:"communication" validate:"omitempty,min=1,max=5"`
	Leadership          *int    `json:"leadership" validate:"omitempty,min=1,max=5"`
	Teamwork            *int    `json:"teamwork" validate:"omitempty,min=1,max=5"`
	Comments            *string `json:"comments"`
	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
	Status              *string `json:"status" validate:"omitempty,oneof=draft submitted completed"`
}
