//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/koimarket/auction-service/internal/domain"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

type Storage interface {
	AddAuction(ctx context.Context, auction storage.Auction) error
	GetAuction(ctx context.Context, auctionID string) (*storage.Auction, error)
	ListAuctions(ctx context.Context, filter domain.FilterValues) ([]storage.Auction, error)
	AddKoi(ctx context.Context, koi storage.AuctionKoi) error
	ListKoi(ctx context.Context, filter domain.FilterValues) ([]storage.AuctionKoi, error)
	GetKoiBids(ctx context.Context, koiID string) ([]storage.Bid, error)
	PlaceBid(ctx context.Context, bid storage.Bid) (domain.BidVerdict, error)
	CloseSealedKoi(ctx context.Context, koiID string) (*storage.Bid, error)
	AddOrder(ctx context.Context, order storage.Order) error
	GetOrder(ctx context.Context, orderID string) (*storage.Order, error)
	GetUserOrders(ctx context.Context, buyerID string, lastN int, activeOnly bool) ([]storage.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
	ConfirmOrder(ctx context.Context, orderID string) error
	AcceptShipment(ctx context.Context, orderID string) error
	LeaveFeedback(ctx context.Context, feedback storage.Feedback) error
	GetOrderHistory(ctx context.Context, orderID string) ([]storage.HistoryEntry, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type Server struct {
	storage      Storage
	userRepo     UserRepo
	server       *http.Server
	AuditManager *AuditManager
}

func New(storage Storage, userRepo UserRepo) *Server {
	auditManager := NewAuditManager(2, 5, 500*time.Millisecond)
	return &Server{
		storage:      storage,
		userRepo:     userRepo,
		AuditManager: auditManager,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	go s.handleShutdown()

	log.Printf("Server starting on port %s", port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleShutdown() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	log.Printf("Received signal %v, initiating graceful shutdown...", sig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("HTTP server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	log.Println("Server shutdown completed successfully")

	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.Use(s.auditLogMiddleware, s.basicAuthMiddleware)

	api.HandleFunc("/auctions", s.handleCreateAuction).Methods(http.MethodPost)
	api.HandleFunc("/auctions", s.handleListAuctions).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{id}", s.handleGetAuction).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{id}/koi", s.handleAddKoi).Methods(http.MethodPost)

	api.HandleFunc("/koi", s.handleListKoi).Methods(http.MethodGet)
	api.HandleFunc("/koi/{id}/bids", s.handlePlaceBid).Methods(http.MethodPost)
	api.HandleFunc("/koi/{id}/bids", s.handleKoiBids).Methods(http.MethodGet)
	api.HandleFunc("/koi/{id}/close", s.handleCloseSealedKoi).Methods(http.MethodPost)

	api.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/status", s.handleUpdateOrderStatus).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}/confirm", s.handleConfirmOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/accept-shipment", s.handleAcceptShipment).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/feedback", s.handleLeaveFeedback).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/history", s.handleOrderHistory).Methods(http.MethodGet)

	api.HandleFunc("/users/{userID}/orders", s.handleListUserOrders).Methods(http.MethodGet)

	return router
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
