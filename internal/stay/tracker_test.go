package stay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubClock struct {
	t time.Time
}

func (s stubClock) Now(context.Context) time.Time { return s.t }

func TestTracker_InitialSnapshotIsUnverified(t *testing.T) {
	clk := stubClock{t: time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)}
	tr := NewTracker(clk, "2024-03-01", "2024-03-05")

	snap := tr.Current()
	assert.False(t, snap.Verified)
	assert.NotZero(t, snap.Now)
}

func TestTracker_RunVerifiesAgainstAuthoritativeClock(t *testing.T) {
	clk := stubClock{t: time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)}
	tr := NewTracker(clk, "2024-03-01", "2024-03-05", WithRefreshInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tr.Run(ctx)

	assert.Eventually(t, func() bool {
		return tr.Current().Verified
	}, time.Second, 5*time.Millisecond)

	snap := tr.Current()
	assert.Equal(t, clk.t, snap.Now)
	assert.Equal(t, StageMiddle, snap.Stage)
	assert.True(t, snap.PasswordReleased)
}

func TestTracker_StopsWhenContextCancelled(t *testing.T) {
	clk := stubClock{t: time.Now()}
	tr := NewTracker(clk, "", "", WithRefreshInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop after cancel")
	}
}
