package service

import (
	"context"

	"conduit/internal/domain"
)

type ProfileService struct {
	users     UserStore
	follows   FollowStore
	views     *Views
	txManager TransactionManager
}

func NewProfileService(users UserStore, follows FollowStore, views *Views, txManager TransactionManager) *ProfileService {
	return &ProfileService{
		users:     users,
		follows:   follows,
		views:     views,
		txManager: txManager,
	}
}

func (s *ProfileService) Get(ctx context.Context, viewer domain.Viewer, username string) (domain.Profile, error) {
	return s.views.Profile(ctx, viewer, username)
}

// Follow makes the viewer follow username. Following twice is a no-op.
func (s *ProfileService) Follow(ctx context.Context, viewer domain.Viewer, username string) (domain.Profile, error) {
	return s.toggle(ctx, viewer, username, true)
}

// Unfollow succeeds whether or not the viewer followed username.
func (s *ProfileService) Unfollow(ctx context.Context, viewer domain.Viewer, username string) (domain.Profile, error) {
	return s.toggle(ctx, viewer, username, false)
}

func (s *ProfileService) toggle(ctx context.Context, viewer domain.Viewer, username string, on bool) (domain.Profile, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return domain.Profile{}, domain.ErrUnauthorized
	}

	var profile domain.Profile
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.users.GetByUsername(txCtx, username)
		if err != nil {
			return err
		}
		if target.ID == identity.UserID {
			ve := &domain.ValidationError{}
			ve.Add("username", "cannot follow yourself")
			return ve
		}

		if on {
			_, err = s.follows.Add(txCtx, identity.UserID, target.ID)
		} else {
			_, err = s.follows.Remove(txCtx, identity.UserID, target.ID)
		}
		if err != nil {
			return err
		}

		profile = target.Profile(on)
		return nil
	})
	return profile, err
}
