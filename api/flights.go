package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
	router.GET("/selection", h.selection)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) search(c *gin.Context) {
	source := c.Query("source")
	destination := c.Query("destination")
	dateStr := c.Query("departure_date")
	if source == "" || destination == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source, destination and departure_date are required"})
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure_date, expected YYYY-MM-DD"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), source, destination, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) selection(c *gin.Context) {
	source := c.Query("origin")
	destination := c.Query("destination")
	if source == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	grouped, err := h.service.Selection(c.Request.Context(), source, destination)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grouped)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}
