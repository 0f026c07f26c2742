package domain

import (
	"fmt"
	"time"
)

type AuctionStatus string

const (
	StatusUpcoming AuctionStatus = "UPCOMING"
	StatusOngoing  AuctionStatus = "ONGOING"
	StatusEnded    AuctionStatus = "ENDED"
)

type BidMethod string

const (
	AscendingBid  BidMethod = "ASCENDING_BID"
	SealedBid     BidMethod = "SEALED_BID"
	DescendingBid BidMethod = "DESCENDING_BID"
	FixedPrice    BidMethod = "FIXED_PRICE"
)

func (m BidMethod) Valid() bool {
	switch m {
	case AscendingBid, SealedBid, DescendingBid, FixedPrice:
		return true
	}
	return false
}

// Auction is an immutable snapshot of an auction record. The stored
// Status field is treated as a cache; decision logic always derives the
// status from the timestamps via DeriveStatus.
type Auction struct {
	ID           string
	Title        string
	StartTime    time.Time
	EndTime      time.Time
	CountdownEnd time.Time
	Status       AuctionStatus
	AuctioneerID string
	Method       BidMethod
}

// DeriveStatus computes the canonical status of an auction at the given
// instant. The active window is half-open: now == EndTime is ENDED, so
// an auction is never simultaneously ongoing and ended.
func DeriveStatus(a Auction, now time.Time) AuctionStatus {
	switch {
	case now.Before(a.StartTime):
		return StatusUpcoming
	case now.Before(a.EndTime):
		return StatusOngoing
	default:
		return StatusEnded
	}
}

// InconsistentStatusError reports a stored auction status that drifted
// from the time-derived truth. Non-fatal: callers log it and trust the
// derived value.
type InconsistentStatusError struct {
	AuctionID string
	Stored    AuctionStatus
	Derived   AuctionStatus
}

func (e *InconsistentStatusError) Error() string {
	return fmt.Sprintf("auction %s: stored status %s, derived %s", e.AuctionID, e.Stored, e.Derived)
}

// ValidateStatus flags a mismatch between the stored status field and
// the status derived from the auction's time bounds.
func ValidateStatus(a Auction, now time.Time) error {
	derived := DeriveStatus(a, now)
	if a.Status != derived {
		return &InconsistentStatusError{AuctionID: a.ID, Stored: a.Status, Derived: derived}
	}
	return nil
}

// Validate checks the structural invariants of an auction record and
// reports every offending field.
func (a Auction) Validate() error {
	var verr ValidationError
	if a.ID == "" {
		verr.add("id", "must not be empty")
	}
	if a.Title == "" {
		verr.add("title", "must not be empty")
	}
	if a.AuctioneerID == "" {
		verr.add("auctioneer_id", "must not be empty")
	}
	if !a.Method.Valid() {
		verr.add("bid_method", fmt.Sprintf("unknown bid method %q", string(a.Method)))
	}
	if !a.StartTime.Before(a.EndTime) {
		verr.add("start_time", "must be before end_time")
	}
	if !a.CountdownEnd.IsZero() && a.CountdownEnd.After(a.EndTime) {
		verr.add("end_time_countdown", "must not be after end_time")
	}
	return verr.orNil()
}
