package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.com/koimarket/auction-service/internal/db/mocks"
	"gitlab.com/koimarket/auction-service/internal/repository"
	mock_repositories "gitlab.com/koimarket/auction-service/internal/storage/mocks"
)

type sentMessage struct {
	topic string
	key   []byte
	value []byte
}

type recordingProducer struct {
	sent    []sentMessage
	sendErr error
	closed  bool
}

func (p *recordingProducer) SendMessage(_ context.Context, topic string, key []byte, value []byte) error {
	if p.sendErr != nil {
		return p.sendErr
	}
	p.sent = append(p.sent, sentMessage{topic: topic, key: key, value: value})
	return nil
}

func (p *recordingProducer) Close() error {
	p.closed = true
	return nil
}

func outboxTask(attempts int) *repository.OutboxTask {
	return &repository.OutboxTask{
		ID:       uuid.New(),
		Status:   repository.TaskStatusCreated,
		Payload:  json.RawMessage(`{"accepted":true}`),
		Topic:    "bid_events",
		Attempts: attempts,
	}
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	config := PublisherConfig{PollInterval: time.Hour, BatchSize: 10, MaxAttempts: 3}

	t.Run("claims tasks on the marking transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		mockRepo := mock_repositories.NewMockOutboxTaskRepository(ctrl)
		producer := &recordingProducer{}

		task := outboxTask(0)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		// The SKIP LOCKED fetch has to run on the same transaction that
		// marks the rows PROCESSING, so the locks hold until commit.
		mockRepo.EXPECT().GetProcessableTasks(gomock.Any(), mockTx, 10).
			Return([]*repository.OutboxTask{task}, nil)
		mockRepo.EXPECT().UpdateTaskStatusTx(gomock.Any(), mockTx, task.ID, repository.TaskStatusProcessing, 0, nil, nil).
			Return(nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)
		mockRepo.EXPECT().UpdateTaskStatus(gomock.Any(), mockDB, task.ID, repository.TaskStatusDone, 0, nil, gomock.Not(gomock.Nil())).
			Return(nil)

		publisher := NewPublisher(mockDB, mockRepo, producer, config)
		err := publisher.processBatch(ctx)
		require.NoError(t, err)

		require.Len(t, producer.sent, 1)
		assert.Equal(t, "bid_events", producer.sent[0].topic)
		assert.Equal(t, []byte(task.ID.String()), producer.sent[0].key)
		assert.Equal(t, []byte(task.Payload), producer.sent[0].value)
	})

	t.Run("empty batch commits without publishing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		mockRepo := mock_repositories.NewMockOutboxTaskRepository(ctrl)
		producer := &recordingProducer{}

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockRepo.EXPECT().GetProcessableTasks(gomock.Any(), mockTx, 10).Return(nil, nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		publisher := NewPublisher(mockDB, mockRepo, producer, config)
		err := publisher.processBatch(ctx)
		require.NoError(t, err)
		assert.Empty(t, producer.sent)
	})

	t.Run("send failure bumps attempts and marks FAILED", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		mockRepo := mock_repositories.NewMockOutboxTaskRepository(ctrl)
		producer := &recordingProducer{sendErr: errors.New("broker unavailable")}

		task := outboxTask(1)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockRepo.EXPECT().GetProcessableTasks(gomock.Any(), mockTx, 10).
			Return([]*repository.OutboxTask{task}, nil)
		mockRepo.EXPECT().UpdateTaskStatusTx(gomock.Any(), mockTx, task.ID, repository.TaskStatusProcessing, 1, nil, nil).
			Return(nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		errMsg := "broker unavailable"
		mockRepo.EXPECT().UpdateTaskStatus(gomock.Any(), mockDB, task.ID, repository.TaskStatusFailed, 2, &errMsg, nil).
			Return(nil)

		publisher := NewPublisher(mockDB, mockRepo, producer, config)
		err := publisher.processBatch(ctx)
		require.NoError(t, err)
		assert.Empty(t, producer.sent)
	})

	t.Run("fetch failure rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		mockRepo := mock_repositories.NewMockOutboxTaskRepository(ctrl)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockRepo.EXPECT().GetProcessableTasks(gomock.Any(), mockTx, 10).
			Return(nil, errors.New("database error"))
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		publisher := NewPublisher(mockDB, mockRepo, &recordingProducer{}, config)
		err := publisher.processBatch(ctx)
		assert.Error(t, err)
	})
}
