package goals

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const goalColumns = `g.id, g.employee_id, u.first_name || ' ' || u.last_name, g.title, g.description, g.category, g.target_date, g.status, g.progress, g.manager_approved, g.created_at, g.updated_at`

func (s *Store) ListByEmployees(ctx context.Context, employeeIDs []int64) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+goalColumns+`
    FROM goals g
    JOIN users u ON u.id = g.employee_id
    WHERE g.employee_id = ANY($1)
    ORDER BY g.id
  `, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Goal{}
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.EmployeeName, &g.Title, &g.Description, &g.Category, &g.TargetDate, &g.Status, &g.Progress, &g.ManagerApproved, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Get returns the goal together with its owner's manager id, which the
// mutation guard needs.
func (s *Store) Get(ctx context.Context, id int64) (Goal, *int64, error) {
	var g Goal
	var ownerManagerID *int64
	err := s.DB.QueryRow(ctx, `
    SELECT `+goalColumns+`, u.manager_id
    FROM goals g
    JOIN users u ON u.id = g.employee_id
    WHERE g.id = $1
  `, id).Scan(&g.ID, &g.EmployeeID, &g.EmployeeName, &g.Title, &g.Description, &g.Category, &g.TargetDate, &g.Status, &g.Progress, &g.ManagerApproved, &g.CreatedAt, &g.UpdatedAt, &ownerManagerID)
	if err != nil {
		return Goal{}, nil, err
	}
	return g, ownerManagerID, nil
}

func (s *Store) Create(ctx context.Context, g Goal) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (employee_id, title, description, category, target_date, status, progress)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, g.EmployeeID, g.Title, g.Description, g.Category, g.TargetDate, g.Status, g.Progress).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, id int64, update GoalUpdate) error {
	sets := []string{"updated_at = now()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.TargetDate != nil {
		add("target_date", *update.TargetDate)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Progress != nil {
		add("progress", *update.Progress)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE goals SET %s WHERE id = $%d", joinSets(sets), len(args))
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

// Approve activates the goal and records managerial sign-off in one
// statement.
func (s *Store) Approve(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE goals SET manager_approved = true, status = $1, updated_at = now() WHERE id = $2", StatusActive, id)
	return err
}
