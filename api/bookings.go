package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type purchaseRequest struct {
	FlightID       int64  `json:"flight_id" binding:"required"`
	PassengerName  string `json:"passenger_name"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	PointsToRedeem int64  `json:"points_to_redeem" binding:"gte=0"`
}

type feedbackRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments"`
}

type bookingResponse struct {
	ID              int64  `json:"id"`
	FlightID        int64  `json:"flight_id"`
	PassengerName   string `json:"passenger_name"`
	Status          string `json:"status"`
	RefundStatus    string `json:"refund_status"`
	FinalPriceCents int64  `json:"final_price_cents"`
	BookingDate     string `json:"booking_date"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.purchase)
	router.GET("/", h.list)
	router.GET("/:id/ticket", h.ticket)
	router.POST("/:id/cancel", h.cancel)
	router.POST("/:id/refund", h.refund)
	router.POST("/:id/feedback", h.leaveFeedback)
	router.GET("/:id/feedback", h.bookingFeedback)
}

func (h *BookingHandler) purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Purchase(c.Request.Context(), booking.PurchaseInput{
		Username:       currentUser(c),
		FlightID:       req.FlightID,
		PassengerName:  req.PassengerName,
		PaymentMethod:  req.PaymentMethod,
		PointsToRedeem: req.PointsToRedeem,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(result))
}

func (h *BookingHandler) list(c *gin.Context) {
	views, err := h.service.ListBookings(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) ticket(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	view, err := h.service.Ticket(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(result))
}

func (h *BookingHandler) refund(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	result, err := h.service.RequestRefund(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(result))
}

func (h *BookingHandler) leaveFeedback(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.service.LeaveFeedback(c.Request.Context(), booking.FeedbackInput{
		Username:  currentUser(c),
		BookingID: id,
		Rating:    req.Rating,
		Comments:  req.Comments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

func (h *BookingHandler) bookingFeedback(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	items, err := h.service.BookingFeedback(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return 0, false
	}
	return id, true
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		FlightID:        b.FlightID,
		PassengerName:   b.PassengerName,
		Status:          string(b.Status),
		RefundStatus:    string(b.RefundStatus),
		FinalPriceCents: b.FinalPriceCents,
		BookingDate:     b.BookingDate.Format(time.RFC3339),
	}
}
