package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/koimarket/auction-service/internal/repository"
)

type stubAuctionRepo struct {
	auctions []*repository.Auction
	err      error
}

func (s *stubAuctionRepo) GetAllActive(_ context.Context) ([]*repository.Auction, error) {
	return s.auctions, s.err
}

func TestAuctionCache_LoadInitialData(t *testing.T) {
	repo := &stubAuctionRepo{auctions: []*repository.Auction{
		{ID: "auction-1", Status: "UPCOMING"},
		{ID: "auction-2", Status: "ONGOING"},
	}}
	c := NewAuctionCache(repo)

	err := c.LoadInitialData(context.Background())
	require.NoError(t, err)

	_, found := c.Get("auction-1")
	assert.True(t, found)
	_, found = c.Get("auction-2")
	assert.True(t, found)
}

func TestAuctionCache_LoadInitialDataError(t *testing.T) {
	repo := &stubAuctionRepo{err: errors.New("database down")}
	c := NewAuctionCache(repo)

	err := c.LoadInitialData(context.Background())
	assert.Error(t, err)
}

func TestAuctionCache_SetEvictsEnded(t *testing.T) {
	c := NewAuctionCache(&stubAuctionRepo{})

	c.Set(&repository.Auction{ID: "auction-1", Status: "ONGOING"})
	_, found := c.Get("auction-1")
	require.True(t, found)

	c.Set(&repository.Auction{ID: "auction-1", Status: "ENDED"})
	_, found = c.Get("auction-1")
	assert.False(t, found)
}

func TestAuctionCache_GetReturnsCopy(t *testing.T) {
	c := NewAuctionCache(&stubAuctionRepo{})
	c.Set(&repository.Auction{ID: "auction-1", Status: "ONGOING", Title: "original"})

	first, found := c.Get("auction-1")
	require.True(t, found)
	first.Title = "mutated"

	second, found := c.Get("auction-1")
	require.True(t, found)
	assert.Equal(t, "original", second.Title)
}

func TestAuctionCache_DeleteMissingIsNoop(t *testing.T) {
	c := NewAuctionCache(&stubAuctionRepo{})
	c.Delete("never-cached")

	_, found := c.Get("never-cached")
	assert.False(t, found)
}
