package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
	mock_collector "github.com/Invoker2025/lotofacil-api/internal/mocks/collector"
	"github.com/Invoker2025/lotofacil-api/internal/testutil"
)

func TestCollector_LastN(t *testing.T) {
	newestDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("collects most recent draws newest first", func(t *testing.T) {
		history := testutil.History(t, 3000, 3, newestDate)
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)
		resolver.EXPECT().Latest(gomock.Any()).Return(history[0])
		for _, d := range history {
			resolver.EXPECT().Contest(gomock.Any(), d.Contest).Return(d, true)
		}

		got := New(resolver).LastN(context.Background(), 3)
		assert.Equal(t, history, got)
	})

	t.Run("failed contests are skipped without counting", func(t *testing.T) {
		history := testutil.History(t, 3000, 3, newestDate)
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)
		resolver.EXPECT().Latest(gomock.Any()).Return(history[0])
		resolver.EXPECT().Contest(gomock.Any(), 3000).Return(history[0], true)
		resolver.EXPECT().Contest(gomock.Any(), 2999).Return(draw.Draw{}, false)
		resolver.EXPECT().Contest(gomock.Any(), 2998).Return(history[1], true)
		resolver.EXPECT().Contest(gomock.Any(), 2997).Return(history[2], true)

		got := New(resolver).LastN(context.Background(), 3)
		require.Len(t, got, 3)
		assert.Equal(t, []int{3000, 2998, 2997}, []int{got[0].Contest, got[1].Contest, got[2].Contest})
	})

	t.Run("failed latest yields empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)
		resolver.EXPECT().Latest(gomock.Any()).Return(draw.Draw{})

		got := New(resolver).LastN(context.Background(), 5)
		assert.Empty(t, got)
	})

	t.Run("limit below one yields nil without resolving", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)

		got := New(resolver).LastN(context.Background(), 0)
		assert.Nil(t, got)
	})

	t.Run("walk stops at contest one", func(t *testing.T) {
		history := testutil.History(t, 2, 2, newestDate)
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)
		resolver.EXPECT().Latest(gomock.Any()).Return(history[0])
		resolver.EXPECT().Contest(gomock.Any(), 2).Return(history[0], true)
		resolver.EXPECT().Contest(gomock.Any(), 1).Return(history[1], true)

		got := New(resolver).LastN(context.Background(), 10)
		assert.Len(t, got, 2)
	})
}

func TestCollector_ByDate(t *testing.T) {
	newestDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	setupHistory := func(t *testing.T, history []draw.Draw) *mock_collector.MockDrawResolver {
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)
		resolver.EXPECT().Latest(gomock.Any()).Return(history[0])
		for _, d := range history {
			resolver.EXPECT().Contest(gomock.Any(), d.Contest).Return(d, true).AnyTimes()
		}
		return resolver
	}

	t.Run("collects draws inside the window newest first", func(t *testing.T) {
		history := testutil.History(t, 3000, 6, newestDate)
		resolver := setupHistory(t, history)

		// Draws step two days back per contest, so a four-day-wide window
		// starting at the third draw's date holds exactly three draws.
		start := newestDate.AddDate(0, 0, -4)
		got := New(resolver).ByDate(context.Background(), start, newestDate, 10)

		require.Len(t, got, 3)
		assert.Equal(t, 3000, got[0].Contest)
		assert.Equal(t, 2998, got[2].Contest)
	})

	t.Run("stops at the first draw older than the window", func(t *testing.T) {
		history := testutil.History(t, 3000, 6, newestDate)
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)
		resolver.EXPECT().Latest(gomock.Any()).Return(history[0])
		resolver.EXPECT().Contest(gomock.Any(), 3000).Return(history[0], true)
		resolver.EXPECT().Contest(gomock.Any(), 2999).Return(history[1], true)
		// The first out-of-window draw ends the walk; older contests are
		// never resolved.
		resolver.EXPECT().Contest(gomock.Any(), 2998).Return(history[2], true)

		start := newestDate.AddDate(0, 0, -3)
		got := New(resolver).ByDate(context.Background(), start, newestDate, 10)
		assert.Len(t, got, 2)
	})

	t.Run("draws with unparsable dates are skipped", func(t *testing.T) {
		history := testutil.History(t, 3000, 3, newestDate)
		history[1].Date = "unknown"
		resolver := setupHistory(t, history)

		got := New(resolver).ByDate(context.Background(), newestDate.AddDate(0, 0, -4), newestDate, 3)
		require.Len(t, got, 2)
		assert.Equal(t, []int{3000, 2998}, []int{got[0].Contest, got[1].Contest})
	})

	t.Run("maxFetch bounds total attempts", func(t *testing.T) {
		history := testutil.History(t, 3000, 2, newestDate)
		ctrl := gomock.NewController(t)
		resolver := mock_collector.NewMockDrawResolver(ctrl)
		resolver.EXPECT().Latest(gomock.Any()).Return(history[0])
		resolver.EXPECT().Contest(gomock.Any(), 3000).Return(history[0], true)
		resolver.EXPECT().Contest(gomock.Any(), 2999).Return(history[1], true)

		got := New(resolver).ByDate(context.Background(), time.Time{}, newestDate, 2)
		assert.Len(t, got, 2)
	})

	t.Run("zero start is unbounded", func(t *testing.T) {
		history := testutil.History(t, 3, 3, newestDate)
		resolver := setupHistory(t, history)

		got := New(resolver).ByDate(context.Background(), time.Time{}, newestDate, 10)
		assert.Len(t, got, 3)
	})

	t.Run("draws after end are skipped without stopping", func(t *testing.T) {
		history := testutil.History(t, 3000, 3, newestDate)
		resolver := setupHistory(t, history)

		end := newestDate.AddDate(0, 0, -2)
		got := New(resolver).ByDate(context.Background(), newestDate.AddDate(0, 0, -4), end, 3)
		require.Len(t, got, 2)
		assert.Equal(t, 2999, got[0].Contest)
	})
}

func TestWindowRange(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		window    string
		today     time.Time
		wantStart time.Time
	}{
		{
			name:      "three months",
			window:    "3m",
			today:     today,
			wantStart: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "twelve months crosses the year boundary",
			window:    "12m",
			today:     today,
			wantStart: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "1y aliases 12m",
			window:    "1y",
			today:     today,
			wantStart: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "months above twelve clamp to twelve",
			window:    "99m",
			today:     today,
			wantStart: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "day above 28 clamps to 28",
			window:    "1m",
			today:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "all is unbounded",
			window:    "all",
			today:     today,
			wantStart: time.Time{},
		},
		{
			name:      "unrecognized falls back to 93 days",
			window:    "nonsense",
			today:     today,
			wantStart: today.AddDate(0, 0, -93),
		},
		{
			name:      "empty falls back to 93 days",
			window:    "",
			today:     today,
			wantStart: today.AddDate(0, 0, -93),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WindowRange(tt.window, tt.today)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.today, end)
		})
	}
}
