package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/koimarket/auction-service/internal/domain"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

func (s *Server) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	var auctionRequest struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		StartTime    string `json:"start_time"`
		EndTime      string `json:"end_time"`
		CountdownEnd string `json:"end_time_countdown"`
		AuctioneerID string `json:"auctioneer_id"`
		BidMethod    string `json:"bid_method"`
	}

	if err := json.NewDecoder(r.Body).Decode(&auctionRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	start, err := time.Parse(time.RFC3339, auctionRequest.StartTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid start_time. Use RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, auctionRequest.EndTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid end_time. Use RFC3339")
		return
	}
	var countdownEnd time.Time
	if auctionRequest.CountdownEnd != "" {
		countdownEnd, err = time.Parse(time.RFC3339, auctionRequest.CountdownEnd)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid end_time_countdown. Use RFC3339")
			return
		}
	}

	auction := storage.Auction{
		ID:           auctionRequest.ID,
		Title:        auctionRequest.Title,
		StartTime:    start.UTC(),
		EndTime:      end.UTC(),
		CountdownEnd: countdownEnd,
		AuctioneerID: auctionRequest.AuctioneerID,
		BidMethod:    domain.BidMethod(auctionRequest.BidMethod),
	}

	if err := s.storage.AddAuction(r.Context(), auction); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Validation failed",
				"fields": verr.Fields,
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Auction created successfully",
		"id":      auction.ID,
	})
}

func (s *Server) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	auction, err := s.storage.GetAuction(r.Context(), auctionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, auction)
}

func filterFromRequest(r *http.Request) (domain.FilterValues, error) {
	q := r.URL.Query()
	filter := domain.FilterValues{
		Search:    q.Get("search"),
		BidMethod: q.Get("bid_method"),
	}

	ranges := []struct {
		param string
		dest  **int64
	}{
		{"min_size", &filter.Size.Min},
		{"max_size", &filter.Size.Max},
		{"min_age", &filter.Age.Min},
		{"max_age", &filter.Age.Max},
		{"min_price", &filter.Price.Min},
		{"max_price", &filter.Price.Max},
	}
	for _, rg := range ranges {
		raw := q.Get(rg.param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.FilterValues{}, errors.New("invalid " + rg.param)
		}
		*rg.dest = &v
	}
	return filter, nil
}

func (s *Server) handleListAuctions(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	auctions, err := s.storage.ListAuctions(r.Context(), filter)
	if err != nil {
		respondFilterError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, auctions)
}

func (s *Server) handleListKoi(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	koi, err := s.storage.ListKoi(r.Context(), filter)
	if err != nil {
		respondFilterError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, koi)
}

func respondFilterError(w http.ResponseWriter, err error) {
	var inverted *domain.RangeInvertedError
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &inverted):
		respondError(w, http.StatusBadRequest, "Error: "+inverted.Error())
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "Error: "+verr.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
	}
}

func (s *Server) handleAddKoi(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	var koiRequest struct {
		ID            string `json:"id"`
		Variety       string `json:"variety"`
		SizeCM        int64  `json:"size_cm"`
		AgeMonths     int64  `json:"age_months"`
		StartingPrice int64  `json:"starting_price"`
		ListedPrice   int64  `json:"listed_price"`
		AskingPrice   int64  `json:"asking_price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&koiRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	koi := storage.AuctionKoi{
		ID:            koiRequest.ID,
		AuctionID:     auctionID,
		Variety:       koiRequest.Variety,
		SizeCM:        koiRequest.SizeCM,
		AgeMonths:     koiRequest.AgeMonths,
		StartingPrice: koiRequest.StartingPrice,
		ListedPrice:   koiRequest.ListedPrice,
		AskingPrice:   koiRequest.AskingPrice,
	}

	if err := s.storage.AddKoi(r.Context(), koi); err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Koi added successfully",
		"id":      koi.ID,
	})
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	koiID := mux.Vars(r)["id"]

	var bidRequest struct {
		BidderID   string `json:"bidder_id"`
		BidderName string `json:"bidder_name"`
		Amount     int64  `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&bidRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bid := storage.Bid{
		AuctionKoiID: koiID,
		BidderID:     bidRequest.BidderID,
		BidderName:   bidRequest.BidderName,
		Amount:       bidRequest.Amount,
	}

	verdict, err := s.storage.PlaceBid(r.Context(), bid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	// Rejections are business outcomes, not errors: report the verdict
	// with 200 either way and let the storefront branch on it.
	respondJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleKoiBids(w http.ResponseWriter, r *http.Request) {
	koiID := mux.Vars(r)["id"]

	bids, err := s.storage.GetKoiBids(r.Context(), koiID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, bids)
}

func (s *Server) handleCloseSealedKoi(w http.ResponseWriter, r *http.Request) {
	koiID := mux.Vars(r)["id"]

	winner, err := s.storage.CloseSealedKoi(r.Context(), koiID)
	if err != nil {
		if errors.Is(err, storage.ErrAuctionNotEnded) {
			respondError(w, http.StatusConflict, "Error: "+err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	if winner == nil {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Koi closed without bids"})
		return
	}
	respondJSON(w, http.StatusOK, winner)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var orderRequest struct {
		ID             string         `json:"id"`
		BuyerID        string         `json:"buyer_id"`
		AuctionKoiID   string         `json:"auction_koi_id"`
		ShippingMethod string         `json:"shipping_method"`
		Address        domain.Address `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&orderRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order := storage.Order{
		ID:             orderRequest.ID,
		BuyerID:        orderRequest.BuyerID,
		AuctionKoiID:   orderRequest.AuctionKoiID,
		ShippingMethod: domain.ShippingMethod(orderRequest.ShippingMethod),
		Address:        orderRequest.Address,
	}

	if err := s.storage.AddOrder(r.Context(), order); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Validation failed",
				"fields": verr.Fields,
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Order accepted successfully",
		"id":      order.ID,
	})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	order, err := s.storage.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var statusRequest struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&statusRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.storage.UpdateOrderStatus(r.Context(), orderID, domain.OrderStatus(statusRequest.Status))
	if err != nil {
		if errors.Is(err, storage.ErrInvalidTransition) {
			respondError(w, http.StatusConflict, "Error: "+err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Order status updated successfully",
	})
}

func (s *Server) handleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	if err := s.storage.ConfirmOrder(r.Context(), orderID); err != nil {
		if errors.Is(err, storage.ErrWindowExpired) {
			respondError(w, http.StatusForbidden, "Error: "+err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Order confirmed successfully",
	})
}

func (s *Server) handleAcceptShipment(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	if err := s.storage.AcceptShipment(r.Context(), orderID); err != nil {
		if errors.Is(err, storage.ErrWindowExpired) {
			respondError(w, http.StatusForbidden, "Error: "+err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Shipment accepted successfully",
	})
}

func (s *Server) handleLeaveFeedback(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var feedbackRequest struct {
		UserID  string `json:"user_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&feedbackRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	feedback := storage.Feedback{
		OrderID: orderID,
		UserID:  feedbackRequest.UserID,
		Rating:  feedbackRequest.Rating,
		Comment: feedbackRequest.Comment,
	}

	if err := s.storage.LeaveFeedback(r.Context(), feedback); err != nil {
		if errors.Is(err, storage.ErrWindowExpired) {
			respondError(w, http.StatusForbidden, "Error: "+err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Feedback recorded successfully",
	})
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	history, err := s.storage.GetOrderHistory(r.Context(), orderID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	lastN := 0
	if raw := r.URL.Query().Get("last"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Invalid last parameter")
			return
		}
		lastN = n
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	orders, err := s.storage.GetUserOrders(r.Context(), userID, lastN, activeOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
