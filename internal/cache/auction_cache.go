package cache

import (
	"context"
	"log"
	"sync"

	"gitlab.com/koimarket/auction-service/internal/domain"
	"gitlab.com/koimarket/auction-service/internal/metrics"
	"gitlab.com/koimarket/auction-service/internal/repository"
)

type AuctionRepository interface {
	GetAllActive(ctx context.Context) ([]*repository.Auction, error)
}

// AuctionCache keeps the auctions the storefront hits constantly
// (upcoming and ongoing) in memory. Ended auctions fall out on Set.
type AuctionCache struct {
	mu    sync.RWMutex
	cache map[string]*repository.Auction
	repo  AuctionRepository
}

func NewAuctionCache(repo AuctionRepository) *AuctionCache {
	return &AuctionCache{
		cache: make(map[string]*repository.Auction),
		repo:  repo,
	}
}

func (c *AuctionCache) LoadInitialData(ctx context.Context) error {
	log.Println("Loading initial data into auction cache...")
	auctions, err := c.repo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, auction := range auctions {
		auctionCopy := *auction
		c.cache[auction.ID] = &auctionCopy
	}
	metrics.AuctionCacheItems.Set(float64(len(c.cache)))
	log.Printf("Successfully loaded %d active auctions into cache.", len(c.cache))
	return nil
}

func (c *AuctionCache) Get(auctionID string) (*repository.Auction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	auction, found := c.cache[auctionID]
	if !found {
		return nil, false
	}
	auctionCopy := *auction
	return &auctionCopy, true
}

func (c *AuctionCache) Set(auction *repository.Auction) {
	if !isActiveStatus(auction.Status) {
		c.Delete(auction.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	auctionCopy := *auction
	c.cache[auction.ID] = &auctionCopy
	metrics.AuctionCacheItems.Set(float64(len(c.cache)))
}

func (c *AuctionCache) Delete(auctionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[auctionID]; found {
		delete(c.cache, auctionID)
		metrics.AuctionCacheItems.Set(float64(len(c.cache)))
	}
}

func isActiveStatus(status string) bool {
	return status == string(domain.StatusUpcoming) || status == string(domain.StatusOngoing)
}
