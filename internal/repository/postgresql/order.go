package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"gitlab.com/koimarket/auction-service/internal/db"
	"gitlab.com/koimarket/auction-service/internal/repository"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) storage.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, order *repository.Order) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (
            id, buyer_id, auction_koi_id, order_date, shipping_date, status,
            shipping_method, shipping_fee,
            province_code, province_name, district_code, district_name,
            ward_code, ward_name, street, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
    `, order.ID, order.BuyerID, order.AuctionKoiID, order.OrderDate, order.ShippingDate, order.Status,
		order.ShippingMethod, order.ShippingFee,
		order.ProvinceCode, order.ProvinceName, order.DistrictCode, order.DistrictName,
		order.WardCode, order.WardName, order.Street, order.CreatedAt, order.UpdatedAt)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        UPDATE orders
        SET
            shipping_date = $1,
            status = $2,
            updated_at = $3
        WHERE id = $4
    `, order.ShippingDate, order.Status, order.UpdatedAt, order.ID)
	return err
}

func (r *OrderRepo) GetByBuyerID(ctx context.Context, buyerID string, limit int, activeOnly bool) ([]*repository.Order, error) {
	query := "SELECT * FROM orders WHERE buyer_id = $1"
	args := []interface{}{buyerID}

	if activeOnly {
		query += " AND status != 'DELIVERED'"
	}

	query += " ORDER BY order_date DESC"

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, query, args...)
	return orders, err
}
