package analytics

import "time"

type Dashboard struct {
	GoalCompletionRate   float64           `json:"goal_completion_rate"`
	ReviewCompletionRate float64           `json:"review_completion_rate"`
	AverageRatings       RatingAverages    `json:"average_ratings"`
	DepartmentBreakdown  []DepartmentCount `json:"department_breakdown"`
	TotalEmployees       int               `json:"total_employees"`
	TotalGoals           int               `json:"total_goals"`
	TotalReviews         int               `json:"total_reviews"`
}

type RatingAverages struct {
	Overall       float64 `json:"overall"`
	Technical     float64 `json:"technical"`
	Communication float64 `json:"communication"`
	Leadership    float64 `json:"leadership"`
	Teamwork      float64 `json:"teamwork"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type TrendPoint struct {
	Month         string  `json:"month"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

type TeamMember struct {
	EmployeeName       string  `json:"employee_name"`
	Department         *string `json:"department"`
	OverallRating      *int    `json:"overall_rating"`
	GoalCompletionRate float64 `json:"goal_completion_rate"`
	TotalGoals         int     `json:"total_goals"`
}

type DepartmentStats struct {
	Department    string  `json:"department"`
	AverageRating float64 `json:"average_rating"`
	EmployeeCount int     `json:"employee_count"`
}

type SkillGap struct {
	SkillName           string  `json:"skill_name"`
	Category            *string `json:"category"`
	AverageCurrentLevel float64 `json:"average_current_level"`
	AverageTargetLevel  float64 `json:"average_target_level"`
	GapSize             float64 `json:"gap_size"`
	EmployeesAffected   int     `json:"employees_affected"`
}

// Row types are the narrow projections the store fetches for the pure
// aggregation functions.

type GoalRow struct {
	EmployeeID int64
	Status     string
}

type ReviewRow struct {
	RevieweeID      int64
	OverallRating   *int
	TechnicalSkills *int
	Communication   *int
	Leadership      *int
	Teamwork        *int
	Status          string
	CreatedAt       time.Time
}

type DeptReviewRow struct {
	Department    string
	RevieweeID    int64
	OverallRating *int
}

type SkillRow struct {
	SkillName   string
	Category    *string
	Proficiency int
	Target      int
}
