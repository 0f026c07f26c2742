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

type KoiRepo struct {
	db db.DB
}

func NewKoiRepo(db db.DB) storage.KoiRepository {
	return &KoiRepo{db: db}
}

func (r *KoiRepo) Create(ctx context.Context, koi *repository.AuctionKoi) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO auction_koi (
            id, auction_id, variety, size_cm, age_months, starting_price, listed_price, asking_price, sold, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, koi.ID, koi.AuctionID, koi.Variety, koi.SizeCM, koi.AgeMonths, koi.StartingPrice, koi.ListedPrice, koi.AskingPrice, koi.Sold, koi.CreatedAt, koi.UpdatedAt)
	return err
}

func (r *KoiRepo) GetByID(ctx context.Context, id string) (*repository.AuctionKoi, error) {
	var koi repository.AuctionKoi
	err := r.db.Get(ctx, &koi, "SELECT * FROM auction_koi WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &koi, nil
}

// GetByIDTx locks the koi row for the duration of the transaction so
// bid acceptance is serialized per auction-koi.
func (r *KoiRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.AuctionKoi, error) {
	var koi repository.AuctionKoi
	err := tx.Get(ctx, &koi, "SELECT * FROM auction_koi WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &koi, nil
}

func (r *KoiRepo) UpdateTx(ctx context.Context, tx db.Tx, koi *repository.AuctionKoi) error {
	_, err := tx.Exec(ctx, `
        UPDATE auction_koi
        SET
            asking_price = $1,
            sold = $2,
            winner_id = $3,
            final_price = $4,
            updated_at = $5
        WHERE id = $6
    `, koi.AskingPrice, koi.Sold, koi.WinnerID, koi.FinalPrice, koi.UpdatedAt, koi.ID)
	return err
}

func (r *KoiRepo) List(ctx context.Context, q domain.Query) ([]*repository.AuctionKoi, error) {
	query := "SELECT auction_koi.* FROM auction_koi JOIN auctions ON auctions.id = auction_koi.auction_id"
	var args []interface{}
	var conds []string

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("auction_koi.variety ILIKE $%d", len(args)))
	}
	if q.Method != "" {
		args = append(args, string(q.Method))
		conds = append(conds, fmt.Sprintf("auctions.bid_method = $%d", len(args)))
	}
	if q.Size.Min != nil {
		args = append(args, *q.Size.Min)
		conds = append(conds, fmt.Sprintf("auction_koi.size_cm >= $%d", len(args)))
	}
	if q.Size.Max != nil {
		args = append(args, *q.Size.Max)
		conds = append(conds, fmt.Sprintf("auction_koi.size_cm <= $%d", len(args)))
	}
	if q.Age.Min != nil {
		args = append(args, *q.Age.Min)
		conds = append(conds, fmt.Sprintf("auction_koi.age_months >= $%d", len(args)))
	}
	if q.Age.Max != nil {
		args = append(args, *q.Age.Max)
		conds = append(conds, fmt.Sprintf("auction_koi.age_months <= $%d", len(args)))
	}
	if q.Price.Min != nil {
		args = append(args, *q.Price.Min)
		conds = append(conds, fmt.Sprintf("auction_koi.starting_price >= $%d", len(args)))
	}
	if q.Price.Max != nil {
		args = append(args, *q.Price.Max)
		conds = append(conds, fmt.Sprintf("auction_koi.starting_price <= $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY auction_koi.created_at DESC"

	var koi []*repository.AuctionKoi
	err := r.db.Select(ctx, &koi, query, args...)
	return koi, err
}
