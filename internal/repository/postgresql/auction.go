package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"gitlab.com/koimarket/auction-service/internal/db"
	"gitlab.com/koimarket/auction-service/internal/domain"
	"gitlab.com/koimarket/auction-service/internal/repository"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

type AuctionRepo struct {
	db db.DB
}

func NewAuctionRepo(db db.DB) storage.AuctionRepository {
	return &AuctionRepo{db: db}
}

func (r *AuctionRepo) Create(ctx context.Context, auction *repository.Auction) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO auctions (
            id, title, start_time, end_time, end_time_countdown, status, auctioneer_id, bid_method, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, auction.ID, auction.Title, auction.StartTime, auction.EndTime, auction.CountdownEnd, auction.Status, auction.AuctioneerID, auction.BidMethod, auction.CreatedAt, auction.UpdatedAt)
	return err
}

func (r *AuctionRepo) GetByID(ctx context.Context, id string) (*repository.Auction, error) {
	var auction repository.Auction
	err := r.db.Get(ctx, &auction, "SELECT * FROM auctions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &auction, nil
}

func (r *AuctionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE auctions SET status = $1, updated_at = now() WHERE id = $2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *AuctionRepo) List(ctx context.Context, q domain.Query) ([]*repository.Auction, error) {
	query := "SELECT * FROM auctions"
	var args []interface{}
	var conds []string

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if q.Method != "" {
		args = append(args, string(q.Method))
		conds = append(conds, fmt.Sprintf("bid_method = $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY start_time DESC"

	var auctions []*repository.Auction
	err := r.db.Select(ctx, &auctions, query, args...)
	return auctions, err
}

func (r *AuctionRepo) GetAllActive(ctx context.Context) ([]*repository.Auction, error) {
	var auctions []*repository.Auction
	err := r.db.Select(ctx, &auctions, `
        SELECT * FROM auctions WHERE status IN ('UPCOMING', 'ONGOING') ORDER BY start_time ASC
    `)
	return auctions, err
}
