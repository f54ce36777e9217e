package reviews

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const reviewColumns = `r.id, r.reviewee_id, e.first_name || ' ' || e.last_name, r.reviewer_id, w.first_name || ' ' || w.last_name, r.review_type, r.review_period, r.overall_rating, r.technical_skills, r.communication, r.leadership, r.teamwork, r.comments, r.strengths, r.areas_for_improvement, r.status, r.created_at, r.updated_at`

const reviewJoins = `
    FROM reviews r
    JOIN users e ON e.id = r.reviewee_id
    JOIN users w ON w.id = r.reviewer_id`

func scanReview(row pgx.Row, extra ...any) (Review, error) {
	var r Review
	dest := []any{&r.ID, &r.RevieweeID, &r.RevieweeName, &r.ReviewerID, &r.ReviewerName, &r.ReviewType, &r.ReviewPeriod, &r.OverallRating, &r.TechnicalSkills, &r.Communication, &r.Leadership, &r.Teamwork, &r.Comments, &r.Strengths, &r.AreasForImprovement, &r.Status, &r.CreatedAt, &r.UpdatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return Review{}, err
	}
	return r, nil
}

// ListVisible returns reviews whose subject is in the visibility set, widened
// with reviews the caller authored regardless of subject.
func (s *Store) ListVisible(ctx context.Context, revieweeIDs []int64, reviewerID int64) ([]Review, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+reviewColumns+reviewJoins+`
    WHERE r.reviewee_id = ANY($1) OR r.reviewer_id = $2
    ORDER BY r.id
  `, revieweeIDs, reviewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns the review together with the reviewee's manager id for the
// mutation guard.
func (s *Store) Get(ctx context.Context, id int64) (Review, *int64, error) {
	var revieweeManagerID *int64
	r, err := scanReview(s.DB.QueryRow(ctx, `
    SELECT `+reviewColumns+`, e.manager_id`+reviewJoins+`
    WHERE r.id = $1
  `, id), &revieweeManagerID)
	if err != nil {
		return Review{}, nil, err
	}
	return r, revieweeManagerID, nil
}

func (s *Store) Create(ctx context.Context, r Review) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO reviews (reviewee_id, reviewer_id, review_type, review_period, overall_rating, technical_skills, communication, leadership, teamwork, comments, strengths, areas_for_improvement)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, r.RevieweeID, r.ReviewerID, r.ReviewType, r.ReviewPeriod, r.OverallRating, r.TechnicalSkills, r.Communication, r.Leadership, r.Teamwork, r.Comments, r.Strengths, r.AreasForImprovement).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, id int64, patch ReviewPatch) error {
	sets := []string{"updated_at = now()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.ReviewPeriod != nil {
		add("review_period", *patch.ReviewPeriod)
	}
	if patch.OverallRating != nil {
		add("overall_rating", *patch.OverallRating)
	}
	if patch.TechnicalSkills != nil {
		add("technical_skills", *patch.TechnicalSkills)
	}
	if patch.Communication != nil {
		add("communication", *patch.Communication)
	}
	if patch.Leadership != nil {
		add("leadership", *patch.Leadership)
	}
	if patch.Teamwork != nil {
		add("teamwork", *patch.Teamwork)
	}
	if patch.Comments != nil {
		add("comments", *patch.Comments)
	}
	if patch.Strengths != nil {
		add("strengths", *patch.Strengths)
	}
	if patch.AreasForImprovement != nil {
		add("areas_for_improvement", *patch.AreasForImprovement)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE reviews SET %s WHERE id = $%d", joinSets(sets), len(args))
	_, err := s.DB.Exec(ctx, query, args...)
	return err
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, set := range sets[1:] {
		out += ", " + set
	}
	return out
}

// Submit is the one-way transition to submitted.
func (s *Store) Submit(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE reviews SET status = $1, updated_at = now() WHERE id = $2", StatusSubmitted, id)
	return err
}
