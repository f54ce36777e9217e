package goals

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListByEmployees(ctx context.Context, employeeIDs []int64) ([]Goal, error) {
	return s.Store.ListByEmployees(ctx, employeeIDs)
}

func (s *Service) Get(ctx context.Context, id int64) (Goal, *int64, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, g Goal) (Goal, error) {
	id, err := s.Store.Create(ctx, g)
	if err != nil {
		return Goal{}, err
	}
	created, _, err := s.Store.Get(ctx, id)
	return created, err
}

func (s *Service) Update(ctx context.Context, id int64, update GoalUpdate) (Goal, error) {
	if err := s.Store.Update(ctx, id, update); err != nil {
		return Goal{}, err
	}
	updated, _, err := s.Store.Get(ctx, id)
	return updated, err
}

func (s *Service) Approve(ctx context.Context, id int64) (Goal, error) {
	if err := s.Store.Approve(ctx, id); err != nil {
		return Goal{}, err
	}
	approved, _, err := s.Store.Get(ctx, id)
	return approved, err
}
