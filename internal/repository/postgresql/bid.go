package postgresql

import (
	"context"

	"gitlab.com/koimarket/auction-service/internal/db"
	"gitlab.com/koimarket/auction-service/internal/repository"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

type BidRepo struct {
	db db.DB
}

func NewBidRepo(db db.DB) storage.BidRepository {
	return &BidRepo{db: db}
}

func (r *BidRepo) CreateTx(ctx context.Context, tx db.Tx, bid *repository.Bid) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO bids (
            id, auction_koi_id, bidder_id, bidder_name, amount, placed_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `, bid.ID, bid.AuctionKoiID, bid.BidderID, bid.BidderName, bid.Amount, bid.PlacedAt)
	return err
}

func (r *BidRepo) GetByKoiID(ctx context.Context, koiID string) ([]*repository.Bid, error) {
	var bids []*repository.Bid
	err := r.db.Select(ctx, &bids, `
        SELECT * FROM bids WHERE auction_koi_id = $1 ORDER BY placed_at ASC
    `, koiID)
	return bids, err
}

func (r *BidRepo) GetByKoiIDTx(ctx context.Context, tx db.Tx, koiID string) ([]*repository.Bid, error) {
	var bids []*repository.Bid
	err := tx.Select(ctx, &bids, `
        SELECT * FROM bids WHERE auction_koi_id = $1 ORDER BY placed_at ASC
    `, koiID)
	return bids, err
}
