package reviews

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListVisible(ctx context.Context, revieweeIDs []int64, reviewerID int64) ([]Review, error) {
	return s.Store.ListVisible(ctx, revieweeIDs, reviewerID)
}

func (s *Service) Get(ctx context.Context, id int64) (Review, *int64, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, r Review) (Review, error) {
	id, err := s.Store.Create(ctx, r)
	if err != nil {
		return Review{}, err
	}
	created, _, err := s.Store.Get(ctx, id)
	return created, err
}

func (s *Service) Update(ctx context.Context, id int64, patch ReviewPatch) (Review, error) {
	if err := s.Store.Update(ctx, id, patch); err != nil {
		return Review{}, err
	}
	updated, _, err := s.Store.Get(ctx, id)
	return updated, err
}

func (s *Service) Submit(ctx context.Context, id int64) (Review, error) {
	if err := s.Store.Submit(ctx, id); err != nil {
		return Review{}, err
	}
	submitted, _, err := s.Store.Get(ctx, id)
	return submitted, err
}
