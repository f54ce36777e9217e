package analytics

import (
	"context"
	"time"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/identity"
)

// UserSource is the slice of the identity service the aggregator needs.
type UserSource interface {
	ListByIDs(ctx context.Context, ids []int64) ([]identity.User, error)
	DirectReportIDs(ctx context.Context, managerID int64) ([]int64, error)
}

// Service computes rollups over the caller's visibility set. Admins see
// org-wide numbers, managers only their reporting line.
type Service struct {
	Store    *Store
	Resolver *access.Resolver
	Users    UserSource
	now      func() time.Time
}

func NewService(store *Store, resolver *access.Resolver, users UserSource) *Service {
	return &Service{Store: store, Resolver: resolver, Users: users, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context, caller access.AuthContext) (Dashboard, error) {
	ids, err := s.Resolver.VisibleEmployeeIDs(ctx, caller)
	if err != nil {
		return Dashboard{}, err
	}
	employees, err := s.Users.ListByIDs(ctx, ids)
	if err != nil {
		return Dashboard{}, err
	}
	goalRows, err := s.Store.GoalRows(ctx, ids)
	if err != nil {
		return Dashboard{}, err
	}
	reviewRows, err := s.Store.ReviewRows(ctx, ids)
	if err != nil {
		return Dashboard{}, err
	}
	return buildDashboard(employees, goalRows, reviewRows), nil
}

func (s *Service) PerformanceTrends(ctx context.Context, caller access.AuthContext) ([]TrendPoint, error) {
	ids, err := s.Resolver.VisibleEmployeeIDs(ctx, caller)
	if err != nil {
		return nil, err
	}
	reviewRows, err := s.Store.ReviewRows(ctx, ids)
	if err != nil {
		return nil, err
	}
	return buildTrends(reviewRows, s.now()), nil
}

// TeamComparison compares direct reports for managers and departments for
// admins.
func (s *Service) TeamComparison(ctx context.Context, caller access.AuthContext) (any, error) {
	if caller.IsManager() {
		reportIDs, err := s.Users.DirectReportIDs(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		reports, err := s.Users.ListByIDs(ctx, reportIDs)
		if err != nil {
			return nil, err
		}
		goalRows, err := s.Store.GoalRows(ctx, reportIDs)
		if err != nil {
			return nil, err
		}
		reviewRows, err := s.Store.ReviewRows(ctx, reportIDs)
		if err != nil {
			return nil, err
		}
		return buildTeamComparison(reports, goalRows, reviewRows), nil
	}

	rows, err := s.Store.DeptReviewRows(ctx)
	if err != nil {
		return nil, err
	}
	return buildDepartmentComparison(rows), nil
}

func (s *Service) SkillsGap(ctx context.Context, caller access.AuthContext) ([]SkillGap, error) {
	ids, err := s.Resolver.VisibleEmployeeIDs(ctx, caller)
	if err != nil {
		return nil, err
	}
	rows, err := s.Store.SkillRows(ctx, ids)
	if err != nil {
		return nil, err
	}
	return buildSkillsGap(rows), nil
}
