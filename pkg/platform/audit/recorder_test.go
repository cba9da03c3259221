package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votegate/pkg/platform/audit"
	"votegate/pkg/platform/audit/store/memory"
)

func TestRecorderFansOutToSinks(t *testing.T) {
	sink := memory.New()
	recorder := audit.NewRecorder([]audit.Sink{sink})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = recorder.Run(ctx)
		close(done)
	}()

	recorder.Record(audit.Event{Action: audit.ActionVoterLogin, VoterID: "v1"})
	recorder.Record(audit.Event{Action: audit.ActionSendEmail, Email: "a@x.com"})

	require.Eventually(t, func() bool {
		return len(sink.All()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	events := sink.All()
	assert.Equal(t, audit.ActionVoterLogin, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp stamped on record")
	assert.Equal(t, "a@x.com", events[1].Email)
}

func TestRecorderDropsWhenFull(t *testing.T) {
	sink := memory.New()
	recorder := audit.NewRecorder([]audit.Sink{sink}, audit.WithBuffer(1))

	// No Run goroutine: the second event has nowhere to go and must not block.
	recorder.Record(audit.Event{Action: audit.ActionVoterLogin})

	finished := make(chan struct{})
	go func() {
		recorder.Record(audit.Event{Action: audit.ActionVoterLogin})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on full buffer")
	}
}

func TestMemoryStoreListByVoter(t *testing.T) {
	sink := memory.New()
	ctx := context.Background()

	require.NoError(t, sink.Append(ctx, audit.Event{Action: audit.ActionVoterLogin, VoterID: "v1"}))
	require.NoError(t, sink.Append(ctx, audit.Event{Action: audit.ActionVoterLogin, VoterID: "v2"}))
	require.NoError(t, sink.Append(ctx, audit.Event{Action: audit.ActionVoterRemoved, VoterID: "v1"}))

	events := sink.ListByVoter(ctx, "v1")
	require.Len(t, events, 2)
	assert.Equal(t, audit.ActionVoterRemoved, events[1].Action)
}
