package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.com/koimarket/auction-service/internal/domain"
	mock_server "gitlab.com/koimarket/auction-service/internal/server/mocks"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

func TestHandleCreateAuction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	server := New(mockStorage, mockUserRepo)

	start := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	end := start.Add(48 * time.Hour)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful auction creation",
			requestBody: map[string]interface{}{
				"id":            "auction123",
				"title":         "Spring Kohaku Showcase",
				"start_time":    start.Format(time.RFC3339),
				"end_time":      end.Format(time.RFC3339),
				"auctioneer_id": "farm42",
				"bid_method":    "ASCENDING_BID",
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					AddAuction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, auction storage.Auction) error {
						assert.Equal(t, "auction123", auction.ID)
						assert.Equal(t, domain.AscendingBid, auction.BidMethod)
						assert.True(t, auction.StartTime.Equal(start))
						assert.True(t, auction.EndTime.Equal(end))
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"Auction created successfully","id":"auction123"}`,
		},
		{
			name: "malformed start_time",
			requestBody: map[string]interface{}{
				"id":         "auction123",
				"title":      "Spring Kohaku Showcase",
				"start_time": "yesterday",
				"end_time":   end.Format(time.RFC3339),
				"bid_method": "ASCENDING_BID",
			},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid start_time. Use RFC3339"}`,
		},
		{
			name: "validation failure reports fields",
			requestBody: map[string]interface{}{
				"id":            "auction123",
				"title":         "",
				"start_time":    start.Format(time.RFC3339),
				"end_time":      end.Format(time.RFC3339),
				"auctioneer_id": "farm42",
				"bid_method":    "SNIPE_BID",
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					AddAuction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, auction storage.Auction) error {
						return auction.Domain().Validate()
					})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"Validation failed"`,
		},
		{
			name: "storage error",
			requestBody: map[string]interface{}{
				"id":            "auction123",
				"title":         "Spring Kohaku Showcase",
				"start_time":    start.Format(time.RFC3339),
				"end_time":      end.Format(time.RFC3339),
				"auctioneer_id": "farm42",
				"bid_method":    "ASCENDING_BID",
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					AddAuction(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error: database error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()

			server.handleCreateAuction(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusBadRequest && tc.name == "validation failure reports fields" {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestHandlePlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	server := New(mockStorage, mockUserRepo)

	tests := []struct {
		name           string
		koiID          string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "accepted bid",
			koiID: "koi123",
			requestBody: map[string]interface{}{
				"bidder_id":   "user123",
				"bidder_name": "Aoi",
				"amount":      2_500_000,
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					PlaceBid(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, bid storage.Bid) (domain.BidVerdict, error) {
						assert.Equal(t, "koi123", bid.AuctionKoiID)
						assert.Equal(t, "user123", bid.BidderID)
						assert.Equal(t, int64(2_500_000), bid.Amount)
						return domain.BidVerdict{Accepted: true}, nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"accepted":true,"closes_koi":false}`,
		},
		{
			name:  "rejected bid still returns 200",
			koiID: "koi123",
			requestBody: map[string]interface{}{
				"bidder_id":   "user456",
				"bidder_name": "Ren",
				"amount":      100,
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					PlaceBid(gomock.Any(), gomock.Any()).
					Return(domain.BidVerdict{Accepted: false, Reason: domain.RejectAmountTooLow}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"accepted":false,"reason":"AMOUNT_TOO_LOW","closes_koi":false}`,
		},
		{
			name:           "invalid request body",
			koiID:          "koi123",
			requestBody:    nil,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name:  "storage error",
			koiID: "koi123",
			requestBody: map[string]interface{}{
				"bidder_id": "user123",
				"amount":    2_500_000,
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					PlaceBid(gomock.Any(), gomock.Any()).
					Return(domain.BidVerdict{}, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error: database error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			var body []byte
			if tc.requestBody != nil {
				var err error
				body, err = json.Marshal(tc.requestBody)
				require.NoError(t, err)
			} else {
				body = []byte("{not json")
			}
			req := httptest.NewRequest(http.MethodPost, "/koi/"+tc.koiID+"/bids", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = mux.SetURLVars(req, map[string]string{"id": tc.koiID})

			rr := httptest.NewRecorder()

			server.handlePlaceBid(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleCloseSealedKoi(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	server := New(mockStorage, mockUserRepo)

	tests := []struct {
		name           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "winner returned",
			setupMocks: func() {
				mockStorage.EXPECT().
					CloseSealedKoi(gomock.Any(), "koi123").
					Return(&storage.Bid{
						ID:           "bid9",
						AuctionKoiID: "koi123",
						BidderID:     "user123",
						Amount:       3_000_000,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"bidder_id":"user123"`,
		},
		{
			name: "no bids",
			setupMocks: func() {
				mockStorage.EXPECT().
					CloseSealedKoi(gomock.Any(), "koi123").
					Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Koi closed without bids"}`,
		},
		{
			name: "auction still running",
			setupMocks: func() {
				mockStorage.EXPECT().
					CloseSealedKoi(gomock.Any(), "koi123").
					Return(nil, storage.ErrAuctionNotEnded)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Error: auction has not ended yet"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/koi/koi123/close", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "koi123"})

			rr := httptest.NewRecorder()

			server.handleCloseSealedKoi(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK && tc.name == "winner returned" {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestHandleConfirmOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	server := New(mockStorage, mockUserRepo)

	tests := []struct {
		name           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "confirmed within window",
			setupMocks: func() {
				mockStorage.EXPECT().
					ConfirmOrder(gomock.Any(), "order123").
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Order confirmed successfully"}`,
		},
		{
			name: "window expired",
			setupMocks: func() {
				mockStorage.EXPECT().
					ConfirmOrder(gomock.Any(), "order123").
					Return(storage.ErrWindowExpired)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"Error: action window expired"}`,
		},
		{
			name: "storage error",
			setupMocks: func() {
				mockStorage.EXPECT().
					ConfirmOrder(gomock.Any(), "order123").
					Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error: database error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/orders/order123/confirm", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "order123"})

			rr := httptest.NewRecorder()

			server.handleConfirmOrder(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleUpdateOrderStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	server := New(mockStorage, mockUserRepo)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful status update",
			requestBody: map[string]interface{}{
				"status": "SHIPPED",
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					UpdateOrderStatus(gomock.Any(), "order123", domain.OrderShipped).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Order status updated successfully"}`,
		},
		{
			name: "illegal transition",
			requestBody: map[string]interface{}{
				"status": "PENDING",
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					UpdateOrderStatus(gomock.Any(), "order123", domain.OrderPending).
					Return(storage.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Error: invalid order status transition"}`,
		},
		{
			name: "storage error",
			requestBody: map[string]interface{}{
				"status": "DELIVERED",
			},
			setupMocks: func() {
				mockStorage.EXPECT().
					UpdateOrderStatus(gomock.Any(), "order123", domain.OrderDelivered).
					Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error: database error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPut, "/orders/order123/status", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = mux.SetURLVars(req, map[string]string{"id": "order123"})

			rr := httptest.NewRecorder()

			server.handleUpdateOrderStatus(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleListKoiFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	server := New(mockStorage, mockUserRepo)

	tests := []struct {
		name           string
		query          string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "search and ranges forwarded",
			query: "search=kohaku&bid_method=Sealed+Bid&min_size=20&max_size=45",
			setupMocks: func() {
				mockStorage.EXPECT().
					ListKoi(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter domain.FilterValues) ([]storage.AuctionKoi, error) {
						assert.Equal(t, "kohaku", filter.Search)
						assert.Equal(t, "Sealed Bid", filter.BidMethod)
						require.NotNil(t, filter.Size.Min)
						require.NotNil(t, filter.Size.Max)
						assert.Equal(t, int64(20), *filter.Size.Min)
						assert.Equal(t, int64(45), *filter.Size.Max)
						return []storage.AuctionKoi{{ID: "koi1", Variety: "Kohaku"}}, nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"koi1"`,
		},
		{
			name:           "non-numeric range parameter",
			query:          "min_size=large",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid min_size"}`,
		},
		{
			name:  "inverted range from storage",
			query: "min_price=500&max_price=100",
			setupMocks: func() {
				mockStorage.EXPECT().
					ListKoi(gomock.Any(), gomock.Any()).
					Return(nil, &domain.RangeInvertedError{Field: "price"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodGet, "/koi?"+tc.query, nil)

			rr := httptest.NewRecorder()

			server.handleListKoi(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.name == "non-numeric range parameter" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestHandleListUserOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	server := New(mockStorage, mockUserRepo)

	tests := []struct {
		name           string
		query          string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "last and active forwarded",
			query: "last=5&active=true",
			setupMocks: func() {
				mockStorage.EXPECT().
					GetUserOrders(gomock.Any(), "user123", 5, true).
					Return([]storage.Order{{ID: "order1", BuyerID: "user123"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"order1"`,
		},
		{
			name:           "invalid last parameter",
			query:          "last=soon",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid last parameter"}`,
		},
		{
			name:  "storage error",
			query: "",
			setupMocks: func() {
				mockStorage.EXPECT().
					GetUserOrders(gomock.Any(), "user123", 0, false).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error: database error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodGet, "/users/user123/orders?"+tc.query, nil)
			req = mux.SetURLVars(req, map[string]string{"userID": "user123"})

			rr := httptest.NewRecorder()

			server.handleListUserOrders(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}
