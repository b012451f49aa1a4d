package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	notifyMocks "github.com/donaldgifford/vinted-search/internal/notify/mocks"
	vintedMocks "github.com/donaldgifford/vinted-search/internal/vinted/mocks"
)

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(vintedMocks.NewMockVintedClient(t), notifyMocks.NewMockNotifier(t), []Watch{jordans})

	sched, err := NewScheduler(eng, 5*time.Minute, quietLogger())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
	assert.NotZero(t, sched.pollEntryID)
	assert.True(t, sched.NextPoll().IsZero())
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(vintedMocks.NewMockVintedClient(t), notifyMocks.NewMockNotifier(t), nil)

	sched, err := NewScheduler(eng, time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	assert.WithinDuration(t, time.Now().Add(time.Hour), sched.NextPoll(), time.Minute)

	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_RunNow(t *testing.T) {
	t.Parallel()

	mc := vintedMocks.NewMockVintedClient(t)
	mc.EXPECT().
		Search(mock.Anything, jordans.URL, jordans.Params).
		Run(func(ctx context.Context, _ string, _ map[string]string) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "poll should be bounded by the interval")
		}).
		Return(catalog(1), nil).Once()

	eng := newTestEngine(mc, notifyMocks.NewMockNotifier(t), []Watch{jordans})
	sched, err := NewScheduler(eng, time.Minute, quietLogger())
	require.NoError(t, err)

	sched.RunNow(context.Background())
	assert.Equal(t, 1, eng.Seen("jordans"))
}
