package service

import (
	"conduit/internal/domain"
)

func (s *ServiceTestSuite) TestFollow() {
	s.users.EXPECT().GetByUsername(s.ctx, "alice").Return(&alice, nil)
	s.follows.EXPECT().Add(s.ctx, carol.ID, alice.ID).Return(true, nil)

	p, err := s.profileSvc.Follow(s.ctx, viewerOf(carol), "alice")
	s.Require().NoError(err)
	s.Equal("alice", p.Username)
	s.True(p.Following)
}

func (s *ServiceTestSuite) TestFollow_Self() {
	s.users.EXPECT().GetByUsername(s.ctx, "alice").Return(&alice, nil)

	_, err := s.profileSvc.Follow(s.ctx, viewerOf(alice), "alice")

	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "username")
}

func (s *ServiceTestSuite) TestUnfollow_NotFollowing() {
	s.users.EXPECT().GetByUsername(s.ctx, "alice").Return(&alice, nil)
	s.follows.EXPECT().Remove(s.ctx, bob.ID, alice.ID).Return(false, nil)

	p, err := s.profileSvc.Unfollow(s.ctx, viewerOf(bob), "alice")
	s.Require().NoError(err)
	s.False(p.Following)
}

func (s *ServiceTestSuite) TestFollow_UnknownUser() {
	s.users.EXPECT().GetByUsername(s.ctx, "zed").Return(nil, domain.ErrNotFound)

	_, err := s.profileSvc.Follow(s.ctx, viewerOf(bob), "zed")
	s.ErrorIs(err, domain.ErrNotFound)
}
