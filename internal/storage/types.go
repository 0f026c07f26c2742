package storage

import (
	"time"

	"gitlab.com/koimarket/auction-service/internal/domain"
)

type Auction struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	StartTime    time.Time            `json:"start_time"`
	EndTime      time.Time            `json:"end_time"`
	CountdownEnd time.Time            `json:"end_time_countdown"`
	Status       domain.AuctionStatus `json:"status"`
	AuctioneerID string               `json:"auctioneer_id"`
	BidMethod    domain.BidMethod     `json:"bid_method"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type AuctionKoi struct {
	ID            string  `json:"id"`
	AuctionID     string  `json:"auction_id"`
	Variety       string  `json:"variety"`
	SizeCM        int64   `json:"size_cm"`
	AgeMonths     int64   `json:"age_months"`
	StartingPrice int64   `json:"starting_price"`
	ListedPrice   int64   `json:"listed_price"`
	AskingPrice   int64   `json:"asking_price"`
	Sold          bool    `json:"sold"`
	WinnerID      *string `json:"winner_id,omitempty"`
	FinalPrice    *int64  `json:"final_price,omitempty"`
}

type Bid struct {
	ID           string    `json:"id"`
	AuctionKoiID string    `json:"auction_koi_id"`
	BidderID     string    `json:"bidder_id"`
	BidderName   string    `json:"bidder_name"`
	Amount       int64     `json:"amount"`
	PlacedAt     time.Time `json:"placed_at"`
}

type Order struct {
	ID             string                `json:"id"`
	BuyerID        string                `json:"buyer_id"`
	AuctionKoiID   string                `json:"auction_koi_id"`
	OrderDate      time.Time             `json:"order_date"`
	ShippingDate   *time.Time            `json:"shipping_date,omitempty"`
	Status         domain.OrderStatus    `json:"status"`
	ShippingMethod domain.ShippingMethod `json:"shipping_method"`
	ShippingFee    int64                 `json:"shipping_fee"`
	Address        domain.Address        `json:"address"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type Feedback struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryEntry struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// Domain returns the pure snapshot the auction rules operate on.
func (a Auction) Domain() domain.Auction {
	return domain.Auction{
		ID:           a.ID,
		Title:        a.Title,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		CountdownEnd: a.CountdownEnd,
		Status:       a.Status,
		AuctioneerID: a.AuctioneerID,
		Method:       a.BidMethod,
	}
}

// Domain returns the pure snapshot the eligibility rules operate on.
func (o Order) Domain() domain.Order {
	return domain.Order{
		ID:           o.ID,
		BuyerID:      o.BuyerID,
		OrderDate:    o.OrderDate,
		ShippingDate: o.ShippingDate,
		Status:       o.Status,
		Address:      o.Address,
		Shipping:     o.ShippingMethod,
	}
}
