package domain

import (
	"fmt"
	"strings"
)

type FilterType string

const (
	FilterKoi     FilterType = "koi"
	FilterAuction FilterType = "auction"
)

// Bid-method filter labels as the storefront dropdown shows them.
const (
	MethodLabelAll        = "All"
	MethodLabelAscending  = "Ascending Bid"
	MethodLabelDescending = "Descending Bid"
	MethodLabelSealed     = "Sealed Bid"
	MethodLabelFixed      = "Fixed Price"
)

// IntRange is an optional numeric range; nil ends are unbounded.
type IntRange struct {
	Min *int64
	Max *int64
}

func (r IntRange) inverted() bool {
	return r.Min != nil && r.Max != nil && *r.Min > *r.Max
}

// FilterValues is the tagged filter union coming from the storefront:
// koi filters carry numeric ranges, auction filters do not, both share
// a free-text search term and a bid-method label.
type FilterValues struct {
	Type      FilterType
	Search    string
	BidMethod string

	// Koi-only ranges.
	Size  IntRange
	Age   IntRange
	Price IntRange
}

// RangeInvertedError reports a supplied range with min > max.
type RangeInvertedError struct {
	Field string
	Min   int64
	Max   int64
}

func (e *RangeInvertedError) Error() string {
	return fmt.Sprintf("range inverted for %s: min %d > max %d", e.Field, e.Min, e.Max)
}

// Query is the normalized, validated filter consumed by the listing
// repositories. An empty Method means no bid-method filter.
type Query struct {
	Type   FilterType
	Search string
	Method BidMethod

	Size  IntRange
	Age   IntRange
	Price IntRange
}

// BuildQuery normalizes a FilterValues union into a single validated
// query: the "All" label maps to no filter, human-readable labels map
// to the enumerated bid methods, the search term is trimmed, and any
// supplied range with min > max is rejected.
func BuildQuery(f FilterValues) (Query, error) {
	if f.Type != FilterKoi && f.Type != FilterAuction {
		var verr ValidationError
		verr.add("type", fmt.Sprintf("unknown filter type %q", string(f.Type)))
		return Query{}, &verr
	}

	method, ok := methodFromLabel(f.BidMethod)
	if !ok {
		var verr ValidationError
		verr.add("bid_method", fmt.Sprintf("unknown bid method filter %q", f.BidMethod))
		return Query{}, &verr
	}

	q := Query{
		Type:   f.Type,
		Search: strings.TrimSpace(f.Search),
		Method: method,
	}

	if f.Type == FilterKoi {
		ranges := []struct {
			field string
			r     IntRange
		}{
			{"size", f.Size},
			{"age", f.Age},
			{"price", f.Price},
		}
		for _, fr := range ranges {
			if fr.r.inverted() {
				return Query{}, &RangeInvertedError{Field: fr.field, Min: *fr.r.Min, Max: *fr.r.Max}
			}
		}
		q.Size = f.Size
		q.Age = f.Age
		q.Price = f.Price
	}

	return q, nil
}

func methodFromLabel(label string) (BidMethod, bool) {
	switch label {
	case MethodLabelAll, "":
		return "", true
	case MethodLabelAscending:
		return AscendingBid, true
	case MethodLabelDescending:
		return DescendingBid, true
	case MethodLabelSealed:
		return SealedBid, true
	case MethodLabelFixed:
		return FixedPrice, true
	}
	return "", false
}
