package domain

import "time"

// Bid is one accepted or candidate bid on an auction-koi. Amounts are
// positive integers in currency minor units.
type Bid struct {
	AuctionKoiID string
	BidderID     string
	BidderName   string
	Amount       int64
	PlacedAt     time.Time
}

type RejectKind string

const (
	RejectAuctionNotActive RejectKind = "AUCTION_NOT_ACTIVE"
	RejectAmountTooLow     RejectKind = "AMOUNT_TOO_LOW"
	RejectAlreadySold      RejectKind = "ALREADY_SOLD"
	RejectInvalidAmount    RejectKind = "INVALID_AMOUNT"
)

// BidVerdict is the outcome of evaluating one candidate bid. Rejections
// are expected business outcomes, not errors.
type BidVerdict struct {
	Accepted  bool       `json:"accepted"`
	Reason    RejectKind `json:"reason,omitempty"`
	ClosesKoi bool       `json:"closes_koi"`
}

// KoiPricing carries the per-koi price inputs the bid rules need. The
// asking price of a descending auction decreases over time and is
// driven by the caller, never computed here.
type KoiPricing struct {
	StartingPrice int64
	ListedPrice   int64
	AskingPrice   int64
}

func reject(kind RejectKind) BidVerdict {
	return BidVerdict{Accepted: false, Reason: kind}
}

// EvaluateBid decides whether a candidate bid is acceptable against the
// ordered history of previously accepted bids for one auction-koi.
// The caller must serialize invocations per auction-koi: the verdict
// depends on the latest committed history.
func EvaluateBid(method BidMethod, status AuctionStatus, pricing KoiPricing, history []Bid, candidate Bid) BidVerdict {
	if status != StatusOngoing {
		return reject(RejectAuctionNotActive)
	}
	if candidate.Amount <= 0 {
		return reject(RejectInvalidAmount)
	}

	switch method {
	case AscendingBid:
		if len(history) == 0 {
			if candidate.Amount < pricing.StartingPrice {
				return reject(RejectAmountTooLow)
			}
			return BidVerdict{Accepted: true}
		}
		if candidate.Amount <= HighestBid(history).Amount {
			return reject(RejectAmountTooLow)
		}
		return BidVerdict{Accepted: true}

	case DescendingBid:
		// First accepted bid wins and closes the koi.
		if len(history) > 0 {
			return reject(RejectAlreadySold)
		}
		if candidate.Amount < pricing.AskingPrice {
			return reject(RejectAmountTooLow)
		}
		return BidVerdict{Accepted: true, ClosesKoi: true}

	case SealedBid:
		// Amounts are not compared until the auction closes.
		return BidVerdict{Accepted: true}

	case FixedPrice:
		if len(history) > 0 {
			return reject(RejectAlreadySold)
		}
		if candidate.Amount < pricing.ListedPrice {
			return reject(RejectAmountTooLow)
		}
		if candidate.Amount != pricing.ListedPrice {
			return reject(RejectInvalidAmount)
		}
		return BidVerdict{Accepted: true, ClosesKoi: true}
	}

	return reject(RejectInvalidAmount)
}

// HighestBid returns the bid with the highest amount; ties go to the
// earliest PlacedAt. Returns nil for an empty history.
func HighestBid(history []Bid) *Bid {
	var best *Bid
	for i := range history {
		b := &history[i]
		if best == nil || b.Amount > best.Amount ||
			(b.Amount == best.Amount && b.PlacedAt.Before(best.PlacedAt)) {
			best = b
		}
	}
	return best
}

// SealedWinner resolves a sealed-bid auction-koi at close time: the
// highest sealed amount wins, ties broken by earliest bid time.
// Returns nil when no bids were recorded.
func SealedWinner(history []Bid) *Bid {
	return HighestBid(history)
}
