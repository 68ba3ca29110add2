//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "passprove/pkg/platform/audit"
	"passprove/pkg/platform/audit/publishers/kafka"
	"passprove/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *KafkaPublisherSuite) TestEmitDeliversKeyedEvent() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "audit-" + uuid.NewString()
	pub, err := kafka.New([]string{s.redpanda.Broker}, topic,
		kafka.WithMetrics(kafka.NewMetrics(prometheus.NewRegistry())))
	s.Require().NoError(err)
	s.Require().NoError(pub.EnsureTopic(ctx, 1, 1))
	s.Require().NoError(pub.EnsureTopic(ctx, 1, 1), "second ensure tolerates existing topic")

	sessionID := uuid.NewString()
	s.Require().NoError(pub.Emit(ctx, audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    audit.ActionSessionCompleted,
		SessionID: sessionID,
		Status:    "success",
		Outcome:   "approved",
	}))
	s.Require().NoError(pub.Close(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal(sessionID, string(records[0].Key))

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(audit.ActionSessionCompleted, got.Action)
	s.Equal("approved", got.Outcome)
}
