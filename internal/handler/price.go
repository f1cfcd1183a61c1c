package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend-woltapp-completion/internal/quote"
	"backend-woltapp-completion/internal/validate"
)

const (
	codeInvalidInput       = "invalid_input"
	codeDistanceTooFar     = "distance_too_far"
	codeNotDeliverable     = "not_deliverable"
	codeUpstreamError      = "upstream_error"
	codeUpstreamTimeout    = "upstream_timeout"
	codeInvalidVenueConfig = "invalid_venue_config"
	codeInvalidCoordinates = "invalid_coordinates"
	codeInternalError      = "internal_error"
)

// Quoter prices one delivery order.
type Quoter interface {
	Quote(ctx context.Context, req quote.Request) quote.Outcome
}

type priceResponse struct {
	TotalPrice          int64        `json:"total_price"`
	SmallOrderSurcharge int64        `json:"small_order_surcharge"`
	CartValue           int64        `json:"cart_value"`
	Delivery            deliveryPart `json:"delivery"`
}

type deliveryPart struct {
	Fee      int64 `json:"fee"`
	Distance int   `json:"distance"`
}

type errorResponse struct {
	Error       string               `json:"error"`
	Code        string               `json:"code"`
	Fields      []validate.Violation `json:"fields,omitempty"`
	Distance    *int                 `json:"distance,omitempty"`
	MaxDistance *int                 `json:"max_distance,omitempty"`
	CartValue   *int64               `json:"cart_value,omitempty"`
}

type PriceHandler struct {
	quoter  Quoter
	timeout time.Duration
}

// NewPriceHandler bounds every quote by timeout; zero means no extra bound.
func NewPriceHandler(q Quoter, timeout time.Duration) *PriceHandler {
	return &PriceHandler{quoter: q, timeout: timeout}
}

// GetPrice serves GET /api/v1/delivery-order-price.
func (h *PriceHandler) GetPrice(c *gin.Context) {
	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	out := h.quoter.Quote(ctx, quote.Request{
		VenueSlug: c.Query("venue_slug"),
		CartValue: c.Query("cart_value"),
		UserLat:   c.Query("user_lat"),
		UserLon:   c.Query("user_lon"),
	})

	switch out.Status {
	case quote.StatusSuccess:
		c.JSON(http.StatusOK, priceResponse{
			TotalPrice:          out.Result.TotalPrice,
			SmallOrderSurcharge: out.Result.SmallOrderSurcharge,
			CartValue:           out.Result.CartValue,
			Delivery:            deliveryPart{Fee: out.Result.DeliveryFee, Distance: out.Result.Distance},
		})
	case quote.StatusRejected:
		writeRejection(c, out.Rejection)
	default:
		writeFailure(c, out.Err)
	}
}

func writeRejection(c *gin.Context, r quote.Rejection) {
	resp := errorResponse{Error: r.Message()}
	switch r.Reason {
	case quote.ReasonInvalidInput:
		resp.Code = codeInvalidInput
		resp.Fields = r.Violations
	case quote.ReasonDistanceTooFar, quote.ReasonNotDeliverable:
		resp.Code = codeDistanceTooFar
		if r.Reason == quote.ReasonNotDeliverable {
			resp.Code = codeNotDeliverable
		}
		resp.Distance = &r.Distance
		resp.MaxDistance = &r.MaxDistance
		resp.CartValue = &r.CartValue
	}
	c.JSON(http.StatusBadRequest, resp)
}

func writeFailure(c *gin.Context, err error) {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	switch quote.FailureReason(err) {
	case quote.FailureTimeout:
		writeError(c, http.StatusGatewayTimeout, codeUpstreamTimeout, "upstream timeout")
	case quote.FailureUpstream:
		writeError(c, http.StatusBadGateway, codeUpstreamError, msg)
	case quote.FailureVenueConfig:
		writeError(c, http.StatusInternalServerError, codeInvalidVenueConfig, msg)
	case quote.FailureParse:
		writeError(c, http.StatusBadRequest, codeInvalidCoordinates, msg)
	default:
		writeError(c, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, errorResponse{Error: msg, Code: code})
}
