package postgresql

import (
	"context"

	"gitlab.com/koimarket/auction-service/internal/db"
	"gitlab.com/koimarket/auction-service/internal/repository"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

type FeedbackRepo struct {
	db db.DB
}

func NewFeedbackRepo(db db.DB) storage.FeedbackRepository {
	return &FeedbackRepo{db: db}
}

func (r *FeedbackRepo) Create(ctx context.Context, feedback *repository.Feedback) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO feedbacks (order_id, user_id, rating, comment, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, feedback.OrderID, feedback.UserID, feedback.Rating, feedback.Comment, feedback.CreatedAt)
	return err
}

func (r *FeedbackRepo) GetByOrderID(ctx context.Context, orderID string) ([]*repository.Feedback, error) {
	var feedbacks []*repository.Feedback
	err := r.db.Select(ctx, &feedbacks, `
        SELECT * FROM feedbacks WHERE order_id = $1 ORDER BY created_at ASC
    `, orderID)
	return feedbacks, err
}
