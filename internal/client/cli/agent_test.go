package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgent_SyncsQueueUntilCancelled(t *testing.T) {
	client := onlineClient()
	env := setupCli(t, client, Tokens{})
	env.login(t)
	localID := enqueueRecord(t, env, "A-1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- env.cli.Run(ctx, "agent", []string{"--interval", "10ms", "--probe", "10ms"})
	}()

	require.Eventually(t, func() bool {
		return len(client.SubmitCheckinCalls()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		records, err := env.store.ListRecords(context.Background())
		return err == nil && len(records) == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("agent did not stop")
	}

	assert.Equal(t, localID, client.SubmitCheckinCalls()[0].Rec.LocalID)
	out := env.out.String()
	assert.Contains(t, out, "Agent started for shipper shipper-1")
	assert.Contains(t, out, "Agent stopped")
}

func TestAgent_InvalidFlag(t *testing.T) {
	env := setupCli(t, onlineClient(), Tokens{})
	env.login(t)

	err := env.cli.Run(context.Background(), "agent", []string{"--interval", "soon"})
	assert.Error(t, err)
}
