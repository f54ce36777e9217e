package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, role, department, position, manager_id, hire_date, is_active, created_at, updated_at`

// UserUpdate is the typed mutable field set applied by Update. Nil fields are
// left untouched.
type UserUpdate struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Role       *string
	Department *string
	Position   *string
	ManagerID  *int64
	HireDate   *time.Time
	IsActive   *bool
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.Department, &u.Position, &u.ManagerID, &u.HireDate, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	u.FullName = u.FirstName + " " + u.LastName
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// ActiveUserByEmail backs login. Inactive users are excluded from the lookup,
// so deactivated accounts fail as invalid credentials.
func (s *Store) ActiveUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1 AND is_active", email))
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListActive(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE is_active ORDER BY id")
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (s *Store) ListActiveReports(ctx context.Context, managerID int64) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE manager_id = $1 AND is_active ORDER BY id", managerID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (s *Store) ListByIDs(ctx context.Context, ids []int64) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE id = ANY($1) ORDER BY id", ids)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	defer rows.Close()
	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) ActiveUserIDs(ctx context.Context) ([]int64, error) {
	return collectIDs(s.DB.Query(ctx, "SELECT id FROM users WHERE is_active ORDER BY id"))
}

func (s *Store) DirectReportIDs(ctx context.Context, managerID int64) ([]int64, error) {
	return collectIDs(s.DB.Query(ctx, "SELECT id FROM users WHERE manager_id = $1 AND is_active ORDER BY id", managerID))
}

func collectIDs(rows pgx.Rows, err error) ([]int64, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) Create(ctx context.Context, u User) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, first_name, last_name, role, department, position, manager_id, hire_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING `+userColumns,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Department, u.Position, u.ManagerID, u.HireDate))
}

func (s *Store) Update(ctx context.Context, id int64, update UserUpdate) (User, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.Role != nil {
		add("role", *update.Role)
	}
	if update.Department != nil {
		add("department", *update.Department)
	}
	if update.Position != nil {
		add("position", *update.Position)
	}
	if update.ManagerID != nil {
		add("manager_id", *update.ManagerID)
	}
	if update.HireDate != nil {
		add("hire_date", *update.HireDate)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s", joinSets(sets), len(args), userColumns)
	return scanUser(s.DB.QueryRow(ctx, query, args...))
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, set := range sets[1:] {
		out += ", " + set
	}
	return out
}

func (s *Store) Deactivate(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false, updated_at = now() WHERE id = $1", id)
	return err
}
