package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuction(start, end time.Time) Auction {
	return Auction{
		ID:           "auction-1",
		Title:        "Spring Kohaku Auction",
		StartTime:    start,
		EndTime:      end,
		AuctioneerID: "staff-1",
		Method:       AscendingBid,
	}
}

func TestDeriveStatus(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	a := testAuction(start, end)

	tests := []struct {
		name     string
		now      time.Time
		expected AuctionStatus
	}{
		{"well before start", start.Add(-24 * time.Hour), StatusUpcoming},
		{"one second before start", start.Add(-time.Second), StatusUpcoming},
		{"exactly at start", start, StatusOngoing},
		{"between start and end", start.Add(24 * time.Hour), StatusOngoing},
		{"one second before end", end.Add(-time.Second), StatusOngoing},
		{"exactly at end", end, StatusEnded},
		{"after end", end.Add(time.Hour), StatusEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatus(a, tt.now))
		})
	}
}

func TestDeriveStatus_Idempotent(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := testAuction(start, start.Add(time.Hour))
	now := start.Add(30 * time.Minute)

	first := DeriveStatus(a, now)
	second := DeriveStatus(a, now)
	assert.Equal(t, first, second)
}

func TestValidateStatus(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("consistent stored status", func(t *testing.T) {
		a := testAuction(start, end)
		a.Status = StatusOngoing
		assert.NoError(t, ValidateStatus(a, start.Add(30*time.Minute)))
	})

	t.Run("stale stored status", func(t *testing.T) {
		a := testAuction(start, end)
		a.Status = StatusOngoing

		err := ValidateStatus(a, end.Add(time.Minute))
		require.Error(t, err)

		var inconsistent *InconsistentStatusError
		require.ErrorAs(t, err, &inconsistent)
		assert.Equal(t, StatusOngoing, inconsistent.Stored)
		assert.Equal(t, StatusEnded, inconsistent.Derived)
	})
}

func TestAuctionValidate(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid auction", func(t *testing.T) {
		a := testAuction(start, start.Add(time.Hour))
		assert.NoError(t, a.Validate())
	})

	t.Run("reports every offending field", func(t *testing.T) {
		a := Auction{
			StartTime: start,
			EndTime:   start.Add(-time.Hour),
			Method:    BidMethod("LOTTERY"),
		}

		err := a.Validate()
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)

		fields := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, f.Field)
		}
		assert.Contains(t, fields, "id")
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "auctioneer_id")
		assert.Contains(t, fields, "bid_method")
		assert.Contains(t, fields, "start_time")
	})

	t.Run("countdown end after end time", func(t *testing.T) {
		a := testAuction(start, start.Add(time.Hour))
		a.CountdownEnd = a.EndTime.Add(time.Minute)

		err := a.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end_time_countdown")
	})
}
