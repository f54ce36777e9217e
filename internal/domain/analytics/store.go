package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GoalRows(ctx context.Context, employeeIDs []int64) ([]GoalRow, error) {
	rows, err := s.DB.Query(ctx, "SELECT employee_id, status FROM goals WHERE employee_id = ANY($1)", employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GoalRow
	for rows.Next() {
		var g GoalRow
		if err := rows.Scan(&g.EmployeeID, &g.Status); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) ReviewRows(ctx context.Context, employeeIDs []int64) ([]ReviewRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT reviewee_id, overall_rating, technical_skills, communication, leadership, teamwork, status, created_at
    FROM reviews
    WHERE reviewee_id = ANY($1)
  `, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReviewRow
	for rows.Next() {
		var r ReviewRow
		if err := rows.Scan(&r.RevieweeID, &r.OverallRating, &r.TechnicalSkills, &r.Communication, &r.Leadership, &r.Teamwork, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeptReviewRows feeds the admin team comparison: every review of an active
// user with a department.
func (s *Store) DeptReviewRows(ctx context.Context) ([]DeptReviewRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.department, r.reviewee_id, r.overall_rating
    FROM reviews r
    JOIN users u ON u.id = r.reviewee_id
    WHERE u.is_active AND u.department IS NOT NULL
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DeptReviewRow
	for rows.Next() {
		var r DeptReviewRow
		if err := rows.Scan(&r.Department, &r.RevieweeID, &r.OverallRating); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SkillRows returns only deficit skills: both levels present and target above
// current.
func (s *Store) SkillRows(ctx context.Context, employeeIDs []int64) ([]SkillRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT skill_name, category, proficiency_level, target_level
    FROM skills
    WHERE employee_id = ANY($1) AND target_level > proficiency_level
  `, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkillRow
	for rows.Next() {
		var r SkillRow
		if err := rows.Scan(&r.SkillName, &r.Category, &r.Proficiency, &r.Target); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
