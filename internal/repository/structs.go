package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type Auction struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	CountdownEnd time.Time `db:"end_time_countdown"`
	Status       string    `db:"status"`
	AuctioneerID string    `db:"auctioneer_id"`
	BidMethod    string    `db:"bid_method"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type AuctionKoi struct {
	ID            string    `db:"id"`
	AuctionID     string    `db:"auction_id"`
	Variety       string    `db:"variety"`
	SizeCM        int64     `db:"size_cm"`
	AgeMonths     int64     `db:"age_months"`
	StartingPrice int64     `db:"starting_price"`
	ListedPrice   int64     `db:"listed_price"`
	AskingPrice   int64     `db:"asking_price"`
	Sold          bool      `db:"sold"`
	WinnerID      *string   `db:"winner_id"`
	FinalPrice    *int64    `db:"final_price"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type Bid struct {
	ID           string    `db:"id"`
	AuctionKoiID string    `db:"auction_koi_id"`
	BidderID     string    `db:"bidder_id"`
	BidderName   string    `db:"bidder_name"`
	Amount       int64     `db:"amount"`
	PlacedAt     time.Time `db:"placed_at"`
}

type Order struct {
	ID             string     `db:"id"`
	BuyerID        string     `db:"buyer_id"`
	AuctionKoiID   string     `db:"auction_koi_id"`
	OrderDate      time.Time  `db:"order_date"`
	ShippingDate   *time.Time `db:"shipping_date"`
	Status         string     `db:"status"`
	ShippingMethod string     `db:"shipping_method"`
	ShippingFee    int64      `db:"shipping_fee"`
	ProvinceCode   string     `db:"province_code"`
	ProvinceName   string     `db:"province_name"`
	DistrictCode   string     `db:"district_code"`
	DistrictName   string     `db:"district_name"`
	WardCode       string     `db:"ward_code"`
	WardName       string     `db:"ward_name"`
	Street         string     `db:"street"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type Feedback struct {
	ID        int64     `db:"id"`
	OrderID   string    `db:"order_id"`
	UserID    string    `db:"user_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

type HistoryEntry struct {
	ID        int64     `db:"id"`
	OrderID   string    `db:"order_id"`
	Status    string    `db:"status"`
	ChangedAt time.Time `db:"changed_at"`
}
