// Package access holds the role and ownership rules that decide which
// employee records a caller may see or mutate. The resolver computes the
// caller's visibility set; the guard functions decide individual reads,
// writes and transitions against an already-loaded target record.
package access

import (
	"context"

	"perftrack/internal/domain/identity"
)

// AuthContext identifies the caller for policy decisions. It is passed
// explicitly instead of being read from ambient state.
type AuthContext struct {
	UserID int64
	Role   string
}

func (c AuthContext) IsAdmin() bool    { return c.Role == identity.RoleAdmin }
func (c AuthContext) IsManager() bool  { return c.Role == identity.RoleManager }
func (c AuthContext) IsEmployee() bool { return c.Role == identity.RoleEmployee }

// Directory is the slice of the identity store the resolver needs.
type Directory interface {
	ActiveUserIDs(ctx context.Context) ([]int64, error)
	DirectReportIDs(ctx context.Context, managerID int64) ([]int64, error)
}

type Resolver struct {
	Directory Directory
}

func NewResolver(directory Directory) *Resolver {
	return &Resolver{Directory: directory}
}

// VisibleEmployeeIDs returns the employee ids whose records the caller may
// see: all active users for admins, direct reports plus self for managers,
// self only for employees. Every list endpoint and analytics rollup scopes
// itself to this set.
func (r *Resolver) VisibleEmployeeIDs(ctx context.Context, caller AuthContext) ([]int64, error) {
	switch caller.Role {
	case identity.RoleAdmin:
		return r.Directory.ActiveUserIDs(ctx)
	case identity.RoleManager:
		reports, err := r.Directory.DirectReportIDs(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		return append(reports, caller.UserID), nil
	default:
		return []int64{caller.UserID}, nil
	}
}
