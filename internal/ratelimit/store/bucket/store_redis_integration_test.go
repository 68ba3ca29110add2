//go:build integration

package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"passprove/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisBucketStore
	ctx   context.Context
}

func TestRedisBucketStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.ctx = context.Background()
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.store = NewRedisBucketStore(s.redis.Client)
}

func (s *RedisBucketStoreSuite) TestAllow() {
	s.Run("admits up to the limit then rejects", func() {
		for i := range 3 {
			result, err := s.store.Allow(s.ctx, "rl:redis:limit", 3, time.Minute)
			s.Require().NoError(err)
			s.True(result.Allowed)
			s.Equal(2-i, result.Remaining)
		}
		result, err := s.store.Allow(s.ctx, "rl:redis:limit", 3, time.Minute)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Positive(result.RetryAfter)
		s.LessOrEqual(result.RetryAfter, 60)
	})

	s.Run("window expires", func() {
		for range 2 {
			_, err := s.store.Allow(s.ctx, "rl:redis:expire", 2, 200*time.Millisecond)
			s.Require().NoError(err)
		}
		time.Sleep(300 * time.Millisecond)
		result, err := s.store.Allow(s.ctx, "rl:redis:expire", 2, 200*time.Millisecond)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})

	s.Run("reset clears the key", func() {
		_, err := s.store.Allow(s.ctx, "rl:redis:reset", 1, time.Minute)
		s.Require().NoError(err)
		s.Require().NoError(s.store.Reset(s.ctx, "rl:redis:reset"))
		result, err := s.store.Allow(s.ctx, "rl:redis:reset", 1, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})
}
