package service

import (
	"context"
	"errors"
	"fmt"

	"conduit/internal/domain"
	"conduit/internal/password"
)

type UserService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUserService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *UserService) Register(ctx context.Context, reg domain.Registration) (*domain.AuthUser, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	return s.authenticate(user)
}

// Login exchanges credentials for a fresh token. Unknown email and wrong
// password fail identically.
func (s *UserService) Login(ctx context.Context, email, plain string) (*domain.AuthUser, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return s.authenticate(*user)
}

// Current returns the viewer's account echoing the token they presented.
func (s *UserService) Current(ctx context.Context, viewer domain.Viewer) (*domain.AuthUser, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthUser{User: *user, Token: viewer.Token()}, nil
}

func (s *UserService) Update(ctx context.Context, viewer domain.Viewer, patch domain.UserPatch) (*domain.AuthUser, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	upd := domain.UserUpdate{
		Username: patch.Username,
		Email:    patch.Email,
		Bio:      patch.Bio,
		Image:    patch.Image,
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, identity.UserID, upd)
	if err != nil {
		return nil, err
	}
	// A rename re-issues the token so its username claim stays current.
	if user.Username != identity.Username {
		return s.authenticate(*user)
	}
	return &domain.AuthUser{User: *user, Token: viewer.Token()}, nil
}

func (s *UserService) authenticate(user domain.User) (*domain.AuthUser, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.AuthUser{User: user, Token: token}, nil
}

func invalidCredentials() error {
	ve := &domain.ValidationError{}
	ve.Add("email or password", "is invalid")
	return ve
}
