package skills

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

const skillColumns = `id, employee_id, skill_name, proficiency_level, category, target_level, last_assessed, created_at`

func (s *Store) ListByEmployees(ctx context.Context, employeeIDs []int64) ([]Skill, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+skillColumns+" FROM skills WHERE employee_id = ANY($1) ORDER BY id", employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Skill{}
	for rows.Next() {
		var sk Skill
		if err := rows.Scan(&sk.ID, &sk.EmployeeID, &sk.SkillName, &sk.ProficiencyLevel, &sk.Category, &sk.TargetLevel, &sk.LastAssessed, &sk.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	return out, rows.Err()
}

// Get returns the skill together with its owner's manager id for the
// mutation guard.
func (s *Store) Get(ctx context.Context, id int64) (Skill, *int64, error) {
	var sk Skill
	var ownerManagerID *int64
	err := s.DB.QueryRow(ctx, `
    SELECT s.id, s.employee_id, s.skill_name, s.proficiency_level, s.category, s.target_level, s.last_assessed, s.created_at, u.manager_id
    FROM skills s
    JOIN users u ON u.id = s.employee_id
    WHERE s.id = $1
  `, id).Scan(&sk.ID, &sk.EmployeeID, &sk.SkillName, &sk.ProficiencyLevel, &sk.Category, &sk.TargetLevel, &sk.LastAssessed, &sk.CreatedAt, &ownerManagerID)
	if err != nil {
		return Skill{}, nil, err
	}
	return sk, ownerManagerID, nil
}

func (s *Store) Create(ctx context.Context, sk Skill) (Skill, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO skills (employee_id, skill_name, proficiency_level, category, target_level, last_assessed)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+skillColumns,
		sk.EmployeeID, sk.SkillName, sk.ProficiencyLevel, sk.Category, sk.TargetLevel, sk.LastAssessed)
	var created Skill
	err := row.Scan(&created.ID, &created.EmployeeID, &created.SkillName, &created.ProficiencyLevel, &created.Category, &created.TargetLevel, &created.LastAssessed, &created.CreatedAt)
	return created, err
}

func (s *Store) Update(ctx context.Context, id int64, update SkillUpdate) error {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.SkillName != nil {
		add("skill_name", *update.SkillName)
	}
	if update.ProficiencyLevel != nil {
		add("proficiency_level", *update.ProficiencyLevel)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.TargetLevel != nil {
		add("target_level", *update.TargetLevel)
	}
	if update.LastAssessed != nil {
		add("last_assessed", *update.LastAssessed)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE skills SET %s WHERE id = $%d", joinSets(sets), len(args))
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
