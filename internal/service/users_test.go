package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"conduit/internal/domain"
	"conduit/internal/password"
)

func (s *ServiceTestSuite) TestRegister() {
	s.hasher.EXPECT().Hash("s3cret-pass").Return("hashed", nil)
	s.users.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) error {
			s.Equal("hashed", u.PasswordHash)
			u.ID = 9
			return nil
		})
	s.tokens.EXPECT().Issue(int64(9), "dave").Return("tok", nil)

	au, err := s.userSvc.Register(s.ctx, domain.Registration{Username: "dave", Email: "dave@example.com", Password: "s3cret-pass"})
	s.Require().NoError(err)
	s.Equal("tok", au.Token)
	s.Equal(int64(9), au.ID)
}

func (s *ServiceTestSuite) TestRegister_DuplicateEmail() {
	s.hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
	s.users.EXPECT().Create(s.ctx, gomock.Any()).Return(&domain.ConflictError{Field: "email"})

	_, err := s.userSvc.Register(s.ctx, domain.Registration{Username: "dave", Email: "alice@example.com", Password: "s3cret-pass"})

	var conflict *domain.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal("email", conflict.Field)
}

func (s *ServiceTestSuite) TestLogin_FailuresAreIndistinguishable() {
	s.users.EXPECT().GetByEmail(s.ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)
	s.users.EXPECT().GetByEmail(s.ctx, "alice@example.com").Return(&alice, nil)
	s.hasher.EXPECT().Compare("hash-a", "wrong").Return(password.ErrMismatch)

	_, errUnknown := s.userSvc.Login(s.ctx, "nobody@example.com", "wrong")
	_, errWrong := s.userSvc.Login(s.ctx, "alice@example.com", "wrong")

	s.Require().Error(errUnknown)
	s.Equal(errUnknown.Error(), errWrong.Error())

	var verr *domain.ValidationError
	s.ErrorAs(errWrong, &verr)
}

func (s *ServiceTestSuite) TestLogin_StoreFailurePropagates() {
	s.users.EXPECT().GetByEmail(s.ctx, gomock.Any()).Return(nil, domain.Unavailable(errors.New("timeout")))

	_, err := s.userSvc.Login(s.ctx, "alice@example.com", "x")
	s.ErrorIs(err, domain.ErrUnavailable)
}

func (s *ServiceTestSuite) TestLogin() {
	s.users.EXPECT().GetByEmail(s.ctx, "alice@example.com").Return(&alice, nil)
	s.hasher.EXPECT().Compare("hash-a", "right-pass").Return(nil)
	s.tokens.EXPECT().Issue(alice.ID, "alice").Return("fresh", nil)

	au, err := s.userSvc.Login(s.ctx, "alice@example.com", "right-pass")
	s.Require().NoError(err)
	s.Equal("fresh", au.Token)
}

func (s *ServiceTestSuite) TestCurrent_EchoesToken() {
	s.users.EXPECT().GetByID(s.ctx, alice.ID).Return(&alice, nil)

	au, err := s.userSvc.Current(s.ctx, viewerOf(alice))
	s.Require().NoError(err)
	s.Equal("token-alice", au.Token)
	s.Equal("alice", au.Username)
}

func (s *ServiceTestSuite) TestUpdateUser_HashesPassword() {
	pw := "new-password"
	bio := "hello"
	updated := alice
	updated.Bio = &bio

	s.hasher.EXPECT().Hash(pw).Return("new-hash", nil)
	s.users.EXPECT().Update(s.ctx, alice.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, upd domain.UserUpdate) (*domain.User, error) {
			s.Require().NotNil(upd.PasswordHash)
			s.Equal("new-hash", *upd.PasswordHash)
			s.Nil(upd.Username)
			return &updated, nil
		})

	au, err := s.userSvc.Update(s.ctx, viewerOf(alice), domain.UserPatch{Password: &pw, Bio: &bio})
	s.Require().NoError(err)
	s.Equal("token-alice", au.Token)
	s.Equal("hello", *au.Bio)
}

func (s *ServiceTestSuite) TestUpdateUser_RenameReissuesToken() {
	name := "alicia"
	renamed := alice
	renamed.Username = name

	s.users.EXPECT().Update(s.ctx, alice.ID, gomock.Any()).Return(&renamed, nil)
	s.tokens.EXPECT().Issue(alice.ID, name).Return("token-alicia", nil)

	au, err := s.userSvc.Update(s.ctx, viewerOf(alice), domain.UserPatch{Username: &name})
	s.Require().NoError(err)
	s.Equal("token-alicia", au.Token)
	s.Equal(name, au.Username)
}
