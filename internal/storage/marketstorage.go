package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.com/koimarket/auction-service/internal/cache"
	"gitlab.com/koimarket/auction-service/internal/db"
	"gitlab.com/koimarket/auction-service/internal/domain"
	"gitlab.com/koimarket/auction-service/internal/metrics"
	"gitlab.com/koimarket/auction-service/internal/repository"
)

const bidEventsTopic = "bid_events"

var (
	ErrWindowExpired     = errors.New("action window expired")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrAuctionNotEnded   = errors.New("auction has not ended yet")
)

// MarketStorage is the service layer over the Postgres repositories.
// It loads immutable snapshots, runs the pure domain rules on them and
// commits the outcome inside a transaction. Bid acceptance is
// serialized per auction-koi by locking the koi row, because the
// verdict depends on the latest committed bid history.
type MarketStorage struct {
	db           db.DB
	auctionRepo  AuctionRepository
	koiRepo      KoiRepository
	bidRepo      BidRepository
	orderRepo    OrderRepository
	feedbackRepo FeedbackRepository
	historyRepo  HistoryRepository
	outboxRepo   OutboxTaskRepository
	logger       *zap.Logger
	cache        *cache.AuctionCache

	// now is the injected clock; the domain rules never read time
	// themselves.
	now func() time.Time
}

func NewMarketStorage(
	database db.DB,
	auctionRepo AuctionRepository,
	koiRepo KoiRepository,
	bidRepo BidRepository,
	orderRepo OrderRepository,
	feedbackRepo FeedbackRepository,
	historyRepo HistoryRepository,
	outboxRepo OutboxTaskRepository,
	logger *zap.Logger,
) *MarketStorage {
	return &MarketStorage{
		db:           database,
		auctionRepo:  auctionRepo,
		koiRepo:      koiRepo,
		bidRepo:      bidRepo,
		orderRepo:    orderRepo,
		feedbackRepo: feedbackRepo,
		historyRepo:  historyRepo,
		outboxRepo:   outboxRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the injected clock. Tests use this to pin "now".
func (s *MarketStorage) WithClock(now func() time.Time) *MarketStorage {
	s.now = now
	return s
}

// WithAuctionCache enables the in-memory active-auction cache.
func (s *MarketStorage) WithAuctionCache(c *cache.AuctionCache) *MarketStorage {
	s.cache = c
	return s
}

func auctionFromRepo(a *repository.Auction) *Auction {
	return &Auction{
		ID:           a.ID,
		Title:        a.Title,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		CountdownEnd: a.CountdownEnd,
		Status:       domain.AuctionStatus(a.Status),
		AuctioneerID: a.AuctioneerID,
		BidMethod:    domain.BidMethod(a.BidMethod),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func koiFromRepo(k *repository.AuctionKoi) *AuctionKoi {
	return &AuctionKoi{
		ID:            k.ID,
		AuctionID:     k.AuctionID,
		Variety:       k.Variety,
		SizeCM:        k.SizeCM,
		AgeMonths:     k.AgeMonths,
		StartingPrice: k.StartingPrice,
		ListedPrice:   k.ListedPrice,
		AskingPrice:   k.AskingPrice,
		Sold:          k.Sold,
		WinnerID:      k.WinnerID,
		FinalPrice:    k.FinalPrice,
	}
}

func bidFromRepo(b *repository.Bid) *Bid {
	return &Bid{
		ID:           b.ID,
		AuctionKoiID: b.AuctionKoiID,
		BidderID:     b.BidderID,
		BidderName:   b.BidderName,
		Amount:       b.Amount,
		PlacedAt:     b.PlacedAt,
	}
}

func orderFromRepo(o *repository.Order) *Order {
	return &Order{
		ID:             o.ID,
		BuyerID:        o.BuyerID,
		AuctionKoiID:   o.AuctionKoiID,
		OrderDate:      o.OrderDate,
		ShippingDate:   o.ShippingDate,
		Status:         domain.OrderStatus(o.Status),
		ShippingMethod: domain.ShippingMethod(o.ShippingMethod),
		ShippingFee:    o.ShippingFee,
		Address: domain.Address{
			ProvinceCode: o.ProvinceCode,
			ProvinceName: o.ProvinceName,
			DistrictCode: o.DistrictCode,
			DistrictName: o.DistrictName,
			WardCode:     o.WardCode,
			WardName:     o.WardName,
			Street:       o.Street,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func orderToRepo(o Order) *repository.Order {
	return &repository.Order{
		ID:             o.ID,
		BuyerID:        o.BuyerID,
		AuctionKoiID:   o.AuctionKoiID,
		OrderDate:      o.OrderDate,
		ShippingDate:   o.ShippingDate,
		Status:         string(o.Status),
		ShippingMethod: string(o.ShippingMethod),
		ShippingFee:    o.ShippingFee,
		ProvinceCode:   o.Address.ProvinceCode,
		ProvinceName:   o.Address.ProvinceName,
		DistrictCode:   o.Address.DistrictCode,
		DistrictName:   o.Address.DistrictName,
		WardCode:       o.Address.WardCode,
		WardName:       o.Address.WardName,
		Street:         o.Address.Street,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func bidsToDomain(bids []*repository.Bid) []domain.Bid {
	history := make([]domain.Bid, 0, len(bids))
	for _, b := range bids {
		history = append(history, domain.Bid{
			AuctionKoiID: b.AuctionKoiID,
			BidderID:     b.BidderID,
			BidderName:   b.BidderName,
			Amount:       b.Amount,
			PlacedAt:     b.PlacedAt,
		})
	}
	return history
}

func (s *MarketStorage) AddAuction(ctx context.Context, auction Auction) error {
	now := s.now().UTC()
	snapshot := auction.Domain()
	if err := snapshot.Validate(); err != nil {
		return err
	}

	repoAuction := &repository.Auction{
		ID:           auction.ID,
		Title:        auction.Title,
		StartTime:    auction.StartTime,
		EndTime:      auction.EndTime,
		CountdownEnd: auction.CountdownEnd,
		Status:       string(domain.DeriveStatus(snapshot, now)),
		AuctioneerID: auction.AuctioneerID,
		BidMethod:    string(auction.BidMethod),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.auctionRepo.Create(ctx, repoAuction); err != nil {
		return fmt.Errorf("failed to add auction: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(repoAuction)
	}
	metrics.AuctionsCreatedTotal.Inc()
	return nil
}

// GetAuction returns the auction with its status recomputed from the
// timestamps. A drifted stored status is logged and refreshed; the
// stored field is only a cache.
func (s *MarketStorage) GetAuction(ctx context.Context, auctionID string) (*Auction, error) {
	var repoAuction *repository.Auction
	if s.cache != nil {
		if cached, found := s.cache.Get(auctionID); found {
			repoAuction = cached
		}
	}
	if repoAuction == nil {
		var err error
		repoAuction, err = s.auctionRepo.GetByID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil, fmt.Errorf("auction not found")
			}
			return nil, fmt.Errorf("failed to get auction: %w", err)
		}
	}

	auction := auctionFromRepo(repoAuction)
	now := s.now().UTC()
	if err := domain.ValidateStatus(auction.Domain(), now); err != nil {
		var inconsistent *domain.InconsistentStatusError
		if errors.As(err, &inconsistent) {
			s.logger.Warn("stored auction status drifted from derived",
				zap.String("auction_id", auctionID),
				zap.String("stored", string(inconsistent.Stored)),
				zap.String("derived", string(inconsistent.Derived)))
			metrics.InconsistentStatusTotal.Inc()

			auction.Status = inconsistent.Derived
			if err := s.auctionRepo.UpdateStatus(ctx, auctionID, string(inconsistent.Derived)); err != nil {
				s.logger.Error("failed to refresh cached auction status", zap.Error(err))
			}
			if s.cache != nil {
				repoAuction.Status = string(inconsistent.Derived)
				s.cache.Set(repoAuction)
			}
		}
	}
	return auction, nil
}

func (s *MarketStorage) ListAuctions(ctx context.Context, filter domain.FilterValues) ([]Auction, error) {
	filter.Type = domain.FilterAuction
	query, err := domain.BuildQuery(filter)
	if err != nil {
		return nil, err
	}

	repoAuctions, err := s.auctionRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}

	now := s.now().UTC()
	auctions := make([]Auction, 0, len(repoAuctions))
	for _, ra := range repoAuctions {
		a := auctionFromRepo(ra)
		a.Status = domain.DeriveStatus(a.Domain(), now)
		auctions = append(auctions, *a)
	}
	return auctions, nil
}

func (s *MarketStorage) ListKoi(ctx context.Context, filter domain.FilterValues) ([]AuctionKoi, error) {
	filter.Type = domain.FilterKoi
	query, err := domain.BuildQuery(filter)
	if err != nil {
		return nil, err
	}

	repoKoi, err := s.koiRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list koi: %w", err)
	}

	koi := make([]AuctionKoi, 0, len(repoKoi))
	for _, rk := range repoKoi {
		koi = append(koi, *koiFromRepo(rk))
	}
	return koi, nil
}

func (s *MarketStorage) AddKoi(ctx context.Context, koi AuctionKoi) error {
	now := s.now().UTC()
	repoKoi := &repository.AuctionKoi{
		ID:            koi.ID,
		AuctionID:     koi.AuctionID,
		Variety:       koi.Variety,
		SizeCM:        koi.SizeCM,
		AgeMonths:     koi.AgeMonths,
		StartingPrice: koi.StartingPrice,
		ListedPrice:   koi.ListedPrice,
		AskingPrice:   koi.AskingPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.koiRepo.Create(ctx, repoKoi); err != nil {
		return fmt.Errorf("failed to add koi: %w", err)
	}
	return nil
}

func (s *MarketStorage) GetKoiBids(ctx context.Context, koiID string) ([]Bid, error) {
	repoBids, err := s.bidRepo.GetByKoiID(ctx, koiID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", err)
	}
	bids := make([]Bid, 0, len(repoBids))
	for _, rb := range repoBids {
		bids = append(bids, *bidFromRepo(rb))
	}
	return bids, nil
}

// PlaceBid evaluates a candidate bid under a per-koi row lock and, when
// accepted, commits the bid, the koi closure and a bid event outbox
// task in one transaction.
func (s *MarketStorage) PlaceBid(ctx context.Context, bid Bid) (domain.BidVerdict, error) {
	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return domain.BidVerdict{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	koi, err := s.koiRepo.GetByIDTx(ctx, tx, bid.AuctionKoiID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return domain.BidVerdict{}, fmt.Errorf("auction koi not found")
		}
		return domain.BidVerdict{}, fmt.Errorf("failed to lock koi: %w", err)
	}

	repoAuction, err := s.auctionRepo.GetByID(ctx, koi.AuctionID)
	if err != nil {
		return domain.BidVerdict{}, fmt.Errorf("failed to get auction: %w", err)
	}
	auction := auctionFromRepo(repoAuction)

	history, err := s.bidRepo.GetByKoiIDTx(ctx, tx, bid.AuctionKoiID)
	if err != nil {
		return domain.BidVerdict{}, fmt.Errorf("failed to get bid history: %w", err)
	}

	status := domain.DeriveStatus(auction.Domain(), now)
	pricing := domain.KoiPricing{
		StartingPrice: koi.StartingPrice,
		ListedPrice:   koi.ListedPrice,
		AskingPrice:   koi.AskingPrice,
	}
	candidate := domain.Bid{
		AuctionKoiID: bid.AuctionKoiID,
		BidderID:     bid.BidderID,
		BidderName:   bid.BidderName,
		Amount:       bid.Amount,
		PlacedAt:     now,
	}

	verdict := domain.EvaluateBid(auction.BidMethod, status, pricing, bidsToDomain(history), candidate)

	if verdict.Accepted {
		repoBid := &repository.Bid{
			ID:           uuid.New().String(),
			AuctionKoiID: bid.AuctionKoiID,
			BidderID:     bid.BidderID,
			BidderName:   bid.BidderName,
			Amount:       bid.Amount,
			PlacedAt:     now,
		}
		if err := s.bidRepo.CreateTx(ctx, tx, repoBid); err != nil {
			return domain.BidVerdict{}, fmt.Errorf("failed to insert bid: %w", err)
		}

		if verdict.ClosesKoi {
			koi.Sold = true
			koi.WinnerID = &bid.BidderID
			koi.FinalPrice = &bid.Amount
			koi.UpdatedAt = now
			if err := s.koiRepo.UpdateTx(ctx, tx, koi); err != nil {
				return domain.BidVerdict{}, fmt.Errorf("failed to close koi: %w", err)
			}
		}
	}

	if err := s.enqueueBidEvent(ctx, tx, bid, verdict, now); err != nil {
		return domain.BidVerdict{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.BidVerdict{}, fmt.Errorf("failed to commit bid transaction: %w", err)
	}

	if verdict.Accepted {
		metrics.BidsAcceptedTotal.Inc()
	} else {
		metrics.BidsRejectedTotal.WithLabelValues(string(verdict.Reason)).Inc()
	}
	return verdict, nil
}

func (s *MarketStorage) enqueueBidEvent(ctx context.Context, tx db.Tx, bid Bid, verdict domain.BidVerdict, now time.Time) error {
	payload, err := json.Marshal(repository.BidEventPayload{
		Timestamp:    now,
		AuctionKoiID: bid.AuctionKoiID,
		BidderID:     bid.BidderID,
		Amount:       bid.Amount,
		Accepted:     verdict.Accepted,
		Reason:       string(verdict.Reason),
		ClosedKoi:    verdict.ClosesKoi,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal bid event: %w", err)
	}

	task := &repository.OutboxTask{Payload: payload, Topic: bidEventsTopic}
	if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue bid event: %w", err)
	}
	return nil
}

// CloseSealedKoi resolves a sealed-bid koi after its auction ended:
// the highest sealed amount wins, ties go to the earliest bid.
func (s *MarketStorage) CloseSealedKoi(ctx context.Context, koiID string) (*Bid, error) {
	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	koi, err := s.koiRepo.GetByIDTx(ctx, tx, koiID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("auction koi not found")
		}
		return nil, fmt.Errorf("failed to lock koi: %w", err)
	}
	if koi.Sold {
		return nil, fmt.Errorf("koi already closed")
	}

	repoAuction, err := s.auctionRepo.GetByID(ctx, koi.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	auction := auctionFromRepo(repoAuction)
	if auction.BidMethod != domain.SealedBid {
		return nil, fmt.Errorf("auction is not sealed-bid")
	}
	if domain.DeriveStatus(auction.Domain(), now) != domain.StatusEnded {
		return nil, ErrAuctionNotEnded
	}

	history, err := s.bidRepo.GetByKoiIDTx(ctx, tx, koiID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bid history: %w", err)
	}

	winner := domain.SealedWinner(bidsToDomain(history))
	if winner == nil {
		// No bids: the koi simply goes unsold.
		koi.Sold = true
		koi.UpdatedAt = now
		if err := s.koiRepo.UpdateTx(ctx, tx, koi); err != nil {
			return nil, fmt.Errorf("failed to close koi: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit close transaction: %w", err)
		}
		return nil, nil
	}

	koi.Sold = true
	koi.WinnerID = &winner.BidderID
	koi.FinalPrice = &winner.Amount
	koi.UpdatedAt = now
	if err := s.koiRepo.UpdateTx(ctx, tx, koi); err != nil {
		return nil, fmt.Errorf("failed to close koi: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit close transaction: %w", err)
	}

	return &Bid{
		AuctionKoiID: koiID,
		BidderID:     winner.BidderID,
		BidderName:   winner.BidderName,
		Amount:       winner.Amount,
		PlacedAt:     winner.PlacedAt,
	}, nil
}

func (s *MarketStorage) AddOrder(ctx context.Context, order Order) error {
	now := s.now().UTC()
	order.Status = domain.OrderPending
	order.ShippingDate = nil
	order.ShippingFee = order.ShippingMethod.Fee()
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := order.Domain().Validate(); err != nil {
		return err
	}

	if err := s.orderRepo.Create(ctx, orderToRepo(order)); err != nil {
		return fmt.Errorf("failed to add order: %w", err)
	}

	entry := &repository.HistoryEntry{
		OrderID:   order.ID,
		Status:    string(order.Status),
		ChangedAt: now,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to add order history entry: %w", err)
	}
	metrics.OrdersCreatedTotal.Inc()
	return nil
}

func (s *MarketStorage) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	repoOrder, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return orderFromRepo(repoOrder), nil
}

func (s *MarketStorage) GetUserOrders(ctx context.Context, buyerID string, lastN int, activeOnly bool) ([]Order, error) {
	repoOrders, err := s.orderRepo.GetByBuyerID(ctx, buyerID, lastN, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	orders := make([]Order, 0, len(repoOrders))
	for _, ro := range repoOrders {
		orders = append(orders, *orderFromRepo(ro))
	}
	return orders, nil
}

// UpdateOrderStatus moves an order forward through the lifecycle.
// Only PENDING -> SHIPPED and SHIPPED -> DELIVERED are legal; the
// shipping date is set exactly when the order enters SHIPPED.
func (s *MarketStorage) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, string(status))
	}
	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	repoOrder, err := s.orderRepo.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return fmt.Errorf("order not found")
		}
		return fmt.Errorf("failed to get order: %w", err)
	}

	from := domain.OrderStatus(repoOrder.Status)
	if !domain.CanTransitionOrder(from, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
	}

	repoOrder.Status = string(status)
	repoOrder.UpdatedAt = now
	if status == domain.OrderShipped {
		shipped := now
		repoOrder.ShippingDate = &shipped
	}
	if err := s.orderRepo.UpdateTx(ctx, tx, repoOrder); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	entry := &repository.HistoryEntry{
		OrderID:   orderID,
		Status:    string(status),
		ChangedAt: now,
	}
	if err := s.historyRepo.CreateTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to add order history entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}

	if status == domain.OrderShipped {
		metrics.OrdersShippedTotal.Inc()
	}
	return nil
}

// ConfirmOrder records the buyer's confirmation of a pending order.
// Confirmation does not advance the status; it is gated by the 7-day
// window and logged into the order history.
func (s *MarketStorage) ConfirmOrder(ctx context.Context, orderID string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if !order.Domain().CanConfirm(now) {
		return ErrWindowExpired
	}

	entry := &repository.HistoryEntry{
		OrderID:   orderID,
		Status:    "CONFIRMED",
		ChangedAt: now,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record confirmation: %w", err)
	}
	metrics.OrdersConfirmedTotal.Inc()
	return nil
}

// AcceptShipment is the buyer acknowledging receipt of a shipped
// order, which completes the lifecycle.
func (s *MarketStorage) AcceptShipment(ctx context.Context, orderID string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.Domain().CanAcceptShipment(s.now().UTC()) {
		return ErrWindowExpired
	}
	return s.UpdateOrderStatus(ctx, orderID, domain.OrderDelivered)
}

func (s *MarketStorage) LeaveFeedback(ctx context.Context, feedback Feedback) error {
	order, err := s.GetOrder(ctx, feedback.OrderID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if !order.Domain().CanLeaveFeedback(now) {
		return ErrWindowExpired
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", feedback.Rating)
	}

	repoFeedback := &repository.Feedback{
		OrderID:   feedback.OrderID,
		UserID:    feedback.UserID,
		Rating:    feedback.Rating,
		Comment:   feedback.Comment,
		CreatedAt: now,
	}
	if err := s.feedbackRepo.Create(ctx, repoFeedback); err != nil {
		return fmt.Errorf("failed to add feedback: %w", err)
	}
	metrics.FeedbackLeftTotal.Inc()
	return nil
}

func (s *MarketStorage) GetOrderHistory(ctx context.Context, orderID string) ([]HistoryEntry, error) {
	repoEntries, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}
	entries := make([]HistoryEntry, 0, len(repoEntries))
	for _, re := range repoEntries {
		entries = append(entries, HistoryEntry{
			OrderID:   re.OrderID,
			Status:    re.Status,
			ChangedAt: re.ChangedAt,
		})
	}
	return entries, nil
}
