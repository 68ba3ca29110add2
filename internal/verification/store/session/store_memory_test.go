package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
}

func (s *SessionStoreSuite) newSession() *models.Session {
	session := models.NewSession(domain.NewSessionID(), domain.NewShopID(), "198.51.100.1", "ua", s.now)
	s.Require().NoError(s.store.Create(s.ctx, session))
	return session
}

func (s *SessionStoreSuite) TestCreateAndFind() {
	session := s.newSession()

	found, err := s.store.FindByID(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInitiated, found.Status)
	s.Equal(session.ShopID, found.ShopID)

	s.ErrorIs(s.store.Create(s.ctx, session), sentinel.ErrConflict)

	_, err = s.store.FindByID(s.ctx, domain.NewSessionID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestExecute() {
	s.Run("validate failure leaves session untouched", func() {
		session := s.newSession()
		_, err := s.store.Execute(s.ctx, session.ID,
			func(*models.Session) error { return sentinel.ErrInvalidState },
			func(sess *models.Session) { sess.Status = models.StatusProcessing },
		)
		s.ErrorIs(err, sentinel.ErrInvalidState)

		found, err := s.store.FindByID(s.ctx, session.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusInitiated, found.Status)
	})

	s.Run("mutation is persisted", func() {
		session := s.newSession()
		updated, err := s.store.Execute(s.ctx, session.ID,
			func(sess *models.Session) error { return sess.CanSelectMethod() },
			func(sess *models.Session) {
				sess.ApplyMethodSelection(domain.MethodQRCode, models.QRCodeChallenge{Token: "t", Data: "d"}, s.now)
			},
		)
		s.Require().NoError(err)
		s.Equal(models.StatusRequiresAction, updated.Status)

		found, err := s.store.FindByID(s.ctx, session.ID)
		s.Require().NoError(err)
		s.Equal(domain.MethodQRCode, found.Method)
		s.Equal(models.QRCodeChallenge{Token: "t", Data: "d"}, found.Details)
	})

	s.Run("unknown session", func() {
		_, err := s.store.Execute(s.ctx, domain.NewSessionID(),
			func(*models.Session) error { return nil },
			func(*models.Session) {},
		)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *SessionStoreSuite) TestConcurrentSelectionHasOneWinner() {
	session := s.newSession()
	const goroutines = 50

	var wg sync.WaitGroup
	var wins atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Execute(s.ctx, session.ID,
				func(sess *models.Session) error { return sess.CanSelectMethod() },
				func(sess *models.Session) { sess.ApplyMethodSelection(domain.MethodOCR, models.NoAction{}, s.now) },
			)
			if err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
}
