package bucket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 10
	testWindow = time.Minute
)

type InMemoryBucketStoreSuite struct {
	suite.Suite
	store *InMemoryBucketStore
	clock time.Time
	ctx   context.Context
}

func TestInMemoryBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBucketStoreSuite))
}

func (s *InMemoryBucketStoreSuite) SetupTest() {
	s.store = NewInMemoryBucketStore()
	s.clock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *InMemoryBucketStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "rl:first", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
		s.Equal(s.clock.Add(testWindow), result.ResetAt)
	})

	s.Run("request over limit denied with retry hint", func() {
		for range testLimit {
			result, err := s.store.Allow(s.ctx, "rl:over", testLimit, testWindow)
			s.Require().NoError(err)
			s.True(result.Allowed)
		}
		result, err := s.store.Allow(s.ctx, "rl:over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.Equal(60, result.RetryAfter)
	})

	s.Run("window slides", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "rl:slide", testLimit, testWindow)
			s.Require().NoError(err)
		}
		s.clock = s.clock.Add(testWindow + time.Second)
		result, err := s.store.Allow(s.ctx, "rl:slide", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})

	s.Run("keys are independent", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "rl:a", testLimit, testWindow)
			s.Require().NoError(err)
		}
		result, err := s.store.Allow(s.ctx, "rl:b", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})

	s.Run("reset clears the window", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "rl:reset", testLimit, testWindow)
			s.Require().NoError(err)
		}
		s.Require().NoError(s.store.Reset(s.ctx, "rl:reset"))
		result, err := s.store.Allow(s.ctx, "rl:reset", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})
}

func (s *InMemoryBucketStoreSuite) TestConcurrentAllowNeverExceedsLimit() {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(s.ctx, "rl:concurrent", testLimit, testWindow)
			if err == nil && result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(testLimit, allowed)
}
