//go:generate mockgen -source ./repositories.go -destination=./mocks/repositories.go -package=mock_repositories
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gitlab.com/koimarket/auction-service/internal/db"
	"gitlab.com/koimarket/auction-service/internal/domain"
	"gitlab.com/koimarket/auction-service/internal/repository"
)

type AuctionRepository interface {
	Create(ctx context.Context, auction *repository.Auction) error
	GetByID(ctx context.Context, id string) (*repository.Auction, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, q domain.Query) ([]*repository.Auction, error)
	GetAllActive(ctx context.Context) ([]*repository.Auction, error)
}

type KoiRepository interface {
	Create(ctx context.Context, koi *repository.AuctionKoi) error
	GetByID(ctx context.Context, id string) (*repository.AuctionKoi, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.AuctionKoi, error)
	UpdateTx(ctx context.Context, tx db.Tx, koi *repository.AuctionKoi) error
	List(ctx context.Context, q domain.Query) ([]*repository.AuctionKoi, error)
}

type BidRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, bid *repository.Bid) error
	GetByKoiID(ctx context.Context, koiID string) ([]*repository.Bid, error)
	GetByKoiIDTx(ctx context.Context, tx db.Tx, koiID string) ([]*repository.Bid, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *repository.Order) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error)
	UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByBuyerID(ctx context.Context, buyerID string, limit int, activeOnly bool) ([]*repository.Order, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *repository.Feedback) error
	GetByOrderID(ctx context.Context, orderID string) ([]*repository.Feedback, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, entry *repository.HistoryEntry) error
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByOrderID(ctx context.Context, orderID string) ([]*repository.HistoryEntry, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, username, password, role string) error
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasks(ctx context.Context, tx db.Tx, limit int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}
