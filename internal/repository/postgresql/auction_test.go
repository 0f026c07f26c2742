package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.com/koimarket/auction-service/internal/db/mocks"
	"gitlab.com/koimarket/auction-service/internal/domain"
	"gitlab.com/koimarket/auction-service/internal/repository"
	"gitlab.com/koimarket/auction-service/internal/repository/postgresql"
)

func TestAuctionRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		testAuction := &repository.Auction{
			ID:           "auction-123",
			Title:        "Spring Kohaku Showcase",
			StartTime:    start,
			EndTime:      start.Add(48 * time.Hour),
			Status:       "UPCOMING",
			AuctioneerID: "farm-42",
			BidMethod:    "ASCENDING_BID",
			CreatedAt:    start.Add(-time.Hour),
			UpdatedAt:    start.Add(-time.Hour),
		}

		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(testAuction.ID),
			gomock.Eq(testAuction.Title),
			gomock.Eq(testAuction.StartTime),
			gomock.Eq(testAuction.EndTime),
			gomock.Eq(testAuction.CountdownEnd),
			gomock.Eq(testAuction.Status),
			gomock.Eq(testAuction.AuctioneerID),
			gomock.Eq(testAuction.BidMethod),
			gomock.Eq(testAuction.CreatedAt),
			gomock.Eq(testAuction.UpdatedAt),
		).Return(nil, nil)

		err := repo.Create(ctx, testAuction)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.Create(ctx, &repository.Auction{ID: "auction-123"})
		assert.Equal(t, expectedErr, err)
	})
}

func TestAuctionRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("auction found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		testAuction := &repository.Auction{
			ID:     "auction-123",
			Title:  "Spring Kohaku Showcase",
			Status: "ONGOING",
		}

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(testAuction.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Auction, _ string, _ string) error {
				*dest = *testAuction
				return nil
			})

		auction, err := repo.GetByID(ctx, testAuction.ID)
		assert.NoError(t, err)
		assert.Equal(t, testAuction, auction)
	})

	t.Run("auction not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		auction, err := repo.GetByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, auction)
	})
}

func pgconnTag(s string) pgconn.CommandTag {
	return pgconn.CommandTag(s)
}

func TestAuctionRepo_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("ONGOING"), gomock.Eq("auction-123")).
			Return(pgconnTag("UPDATE 1"), nil)

		err := repo.UpdateStatus(ctx, "auction-123", "ONGOING")
		assert.NoError(t, err)
	})

	t.Run("no rows affected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconnTag("UPDATE 0"), nil)

		err := repo.UpdateStatus(ctx, "non-existent-id", "ONGOING")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestAuctionRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("no filters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		testAuctions := []*repository.Auction{{ID: "auction-1"}, {ID: "auction-2"}}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Auction, query string, args ...interface{}) error {
				assert.NotContains(t, query, "WHERE")
				assert.Empty(t, args)
				*dest = testAuctions
				return nil
			})

		auctions, err := repo.List(ctx, domain.Query{Type: domain.FilterAuction})
		assert.NoError(t, err)
		assert.Equal(t, testAuctions, auctions)
	})

	t.Run("search and method filters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("%kohaku%"), gomock.Eq("SEALED_BID")).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Auction, query string, _ ...interface{}) error {
				assert.Contains(t, query, "title ILIKE $1")
				assert.Contains(t, query, "bid_method = $2")
				return nil
			})

		_, err := repo.List(ctx, domain.Query{
			Type:   domain.FilterAuction,
			Search: "kohaku",
			Method: domain.SealedBid,
		})
		assert.NoError(t, err)
	})
}

func TestAuctionRepo_GetAllActive(t *testing.T) {
	ctx := context.Background()

	t.Run("returns upcoming and ongoing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewAuctionRepo(mockDB)

		testAuctions := []*repository.Auction{
			{ID: "auction-1", Status: "UPCOMING"},
			{ID: "auction-2", Status: "ONGOING"},
		}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Auction, query string, _ ...interface{}) error {
				assert.Contains(t, query, "'UPCOMING'")
				assert.Contains(t, query, "'ONGOING'")
				*dest = testAuctions
				return nil
			})

		auctions, err := repo.GetAllActive(ctx)
		assert.NoError(t, err)
		assert.Len(t, auctions, 2)
	})
}
