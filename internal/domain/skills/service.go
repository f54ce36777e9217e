package skills

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListByEmployees(ctx context.Context, employeeIDs []int64) ([]Skill, error) {
	return s.Store.ListByEmployees(ctx, employeeIDs)
}

func (s *Service) Get(ctx context.Context, id int64) (Skill, *int64, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, sk Skill) (Skill, error) {
	return s.Store.Create(ctx, sk)
}

func (s *Service) Update(ctx context.Context, id int64, update SkillUpdate) (Skill, error) {
	if err := s.Store.Update(ctx, id, update); err != nil {
		return Skill{}, err
	}
	updated, _, err := s.Store.Get(ctx, id)
	return updated, err
}
