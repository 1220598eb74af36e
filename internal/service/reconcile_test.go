package service

import (
	"errors"

	"conduit/internal/domain"
)

func (s *ServiceTestSuite) TestReconcile() {
	s.favorites.EXPECT().Reconcile(s.ctx).Return(int64(3), nil)

	stats, err := s.reconciler.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), stats.Corrected)
}

func (s *ServiceTestSuite) TestReconcile_Failure() {
	s.favorites.EXPECT().Reconcile(s.ctx).Return(int64(0), domain.Unavailable(errors.New("down")))

	_, err := s.reconciler.Reconcile(s.ctx)
	s.ErrorIs(err, domain.ErrUnavailable)
}
