//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"votegate/pkg/platform/audit"
	"votegate/pkg/testutil/containers"
)

type KafkaPublisherIntegrationSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	sink     *Kafka
}

func TestKafkaPublisherIntegrationSuite(t *testing.T) {
	suite.Run(t, new(KafkaPublisherIntegrationSuite))
}

func (s *KafkaPublisherIntegrationSuite) SetupSuite() {
	s.redpanda = containers.NewRedpandaContainer(s.T())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	s.sink, err = NewKafka(ctx, s.redpanda.Brokers, "votegate.activity.test")
	s.Require().NoError(err)
}

func (s *KafkaPublisherIntegrationSuite) TearDownSuite() {
	if s.sink != nil {
		s.sink.Close()
	}
}

func (s *KafkaPublisherIntegrationSuite) TestAppendRoundTrip() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	event := audit.Event{
		Action:      audit.ActionVoterLogin,
		Timestamp:   time.Now().UTC().Truncate(time.Millisecond),
		VoterID:     "voter-1",
		Email:       "a@x.com",
		Method:      "password",
		RequesterIP: "203.0.113.7",
	}
	s.Require().NoError(s.sink.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics("votegate.activity.test"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().NotEmpty(records)
	s.Equal("voter-1", string(records[0].Key))

	var decoded audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &decoded))
	s.Equal(audit.ActionVoterLogin, decoded.Action)
	s.Equal("password", decoded.Method)
}
