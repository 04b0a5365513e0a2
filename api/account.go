package api

import (
	"net/http"

	"github.com/Domenick1991/skybook/internal/service/booking"
	"github.com/Domenick1991/skybook/internal/service/loyalty"
	"github.com/Domenick1991/skybook/internal/service/notifications"
	"github.com/gin-gonic/gin"
)

// AccountHandler serves the per-user read surfaces: transactions, refunds,
// loyalty balance and notifications.
type AccountHandler struct {
	bookings      booking.BookingUseCase
	loyalty       loyalty.LoyaltyUseCase
	notifications notifications.NotificationUseCase
}

func NewAccountHandler(bookings booking.BookingUseCase, loyaltySvc loyalty.LoyaltyUseCase, notificationsSvc notifications.NotificationUseCase) *AccountHandler {
	return &AccountHandler{
		bookings:      bookings,
		loyalty:       loyaltySvc,
		notifications: notificationsSvc,
	}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.GET("/transactions", h.transactions)
	router.GET("/refunds", h.refunds)
	router.GET("/loyalty", h.loyaltyBalance)
	router.GET("/notifications", h.listNotifications)
	router.POST("/notifications/read", h.markNotificationsRead)
}

func (h *AccountHandler) transactions(c *gin.Context) {
	views, err := h.bookings.ListTransactions(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) refunds(c *gin.Context) {
	views, err := h.bookings.ListRefundable(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) loyaltyBalance(c *gin.Context) {
	account, err := h.loyalty.Balance(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"points":            account.Points,
		"total_points_left": account.TotalPointsLeft,
	})
}

func (h *AccountHandler) listNotifications(c *gin.Context) {
	items, err := h.notifications.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AccountHandler) markNotificationsRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context(), currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}
