package identity

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) UserByID(ctx context.Context, id int64) (User, error) {
	return s.Store.UserByID(ctx, id)
}

func (s *Service) ActiveUserByEmail(ctx context.Context, email string) (User, error) {
	return s.Store.ActiveUserByEmail(ctx, email)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.Store.EmailExists(ctx, email)
}

func (s *Service) ListActive(ctx context.Context) ([]User, error) {
	return s.Store.ListActive(ctx)
}

func (s *Service) ListActiveReports(ctx context.Context, managerID int64) ([]User, error) {
	return s.Store.ListActiveReports(ctx, managerID)
}

func (s *Service) ListByIDs(ctx context.Context, ids []int64) ([]User, error) {
	return s.Store.ListByIDs(ctx, ids)
}

func (s *Service) ActiveUserIDs(ctx context.Context) ([]int64, error) {
	return s.Store.ActiveUserIDs(ctx)
}

func (s *Service) DirectReportIDs(ctx context.Context, managerID int64) ([]int64, error) {
	return s.Store.DirectReportIDs(ctx, managerID)
}

func (s *Service) Create(ctx context.Context, u User) (User, error) {
	return s.Store.Create(ctx, u)
}

func (s *Service) Update(ctx context.Context, id int64, update UserUpdate) (User, error) {
	return s.Store.Update(ctx, id, update)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.Store.Deactivate(ctx, id)
}
