package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Service appends to the audit trail. Records are never mutated or deleted;
// write failures are returned for the caller to log and swallow so they never
// abort the triggering request.
type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, userID int64, action, resourceType string, resourceID *int64, details any, ip string) error {
	var detailsJSON []byte
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		detailsJSON = payload
	}

	// A zero user id means the actor is unknown (e.g. failed logins); the
	// column is a nullable FK.
	var uid any
	if userID != 0 {
		uid = userID
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_logs (user_id, action, resource_type, resource_id, details, ip_address)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, uid, action, resourceType, resourceID, detailsJSON, ip)
	return err
}
