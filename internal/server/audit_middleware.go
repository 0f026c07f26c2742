package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		skipRequestBody := strings.Contains(contentType, "multipart/form-data")
		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   getHandlerName(r.URL.Path, r.Method),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.UserID = username
		}

		entry.EntityID = extractEntityID(r.URL.Path)

		var requestBody []byte
		if !skipRequestBody && r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.EntityID != "" && strings.Contains(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					if order, err := s.storage.GetOrder(r.Context(), entry.EntityID); err == nil {
						entry.OldStatus = string(order.Status)
						entry.NewStatus = statusRequest.Status
					}
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())
		entry.ResponseTruncated = wrw.BodyTruncated()

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

// extractEntityID pulls the auction, koi or order identifier out of
// the request path.
func extractEntityID(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if (part == "auctions" || part == "koi" || part == "orders") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func getHandlerName(path string, method string) string {
	switch {
	case strings.HasPrefix(path, "/auctions"):
		if strings.Contains(path, "/koi") {
			return "handleAddKoi"
		} else if method == http.MethodPost {
			return "handleCreateAuction"
		} else if strings.Count(path, "/") > 1 {
			return "handleGetAuction"
		}
		return "handleListAuctions"
	case strings.HasPrefix(path, "/koi"):
		if strings.Contains(path, "/close") {
			return "handleCloseSealedKoi"
		} else if strings.Contains(path, "/bids") && method == http.MethodPost {
			return "handlePlaceBid"
		} else if strings.Contains(path, "/bids") {
			return "handleKoiBids"
		}
		return "handleListKoi"
	case strings.HasPrefix(path, "/orders"):
		if strings.Contains(path, "/status") {
			return "handleUpdateOrderStatus"
		} else if strings.Contains(path, "/confirm") {
			return "handleConfirmOrder"
		} else if strings.Contains(path, "/accept-shipment") {
			return "handleAcceptShipment"
		} else if strings.Contains(path, "/feedback") {
			return "handleLeaveFeedback"
		} else if strings.Contains(path, "/history") {
			return "handleOrderHistory"
		} else if method == http.MethodPost {
			return "handleCreateOrder"
		}
		return "handleGetOrder"
	case strings.HasPrefix(path, "/users") && strings.Contains(path, "/orders"):
		return "handleListUserOrders"
	}

	return "unknown"
}
