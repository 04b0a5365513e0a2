package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/skybook/api"
	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/service/auth"
	"github.com/Domenick1991/skybook/internal/service/booking"
	"github.com/Domenick1991/skybook/internal/service/flights"
	"github.com/Domenick1991/skybook/internal/service/loyalty"
	"github.com/Domenick1991/skybook/internal/service/notifications"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Auth          auth.AuthUseCase
	Flights       flights.FlightUseCase
	Bookings      booking.BookingUseCase
	Loyalty       loyalty.LoyaltyUseCase
	Notifications notifications.NotificationUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	router := NewRouter(svc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires every handler onto a gin engine.
func NewRouter(svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := api.NewAuthHandler(svc.Auth)
	authHandler.Register(router.Group("/auth"))

	protected := router.Group("/")
	protected.Use(api.SessionMiddleware(svc.Auth))

	authHandler.RegisterProtected(protected.Group("/auth"))
	api.NewFlightHandler(svc.Flights).Register(protected.Group("/flights"))
	api.NewBookingHandler(svc.Bookings).Register(protected.Group("/bookings"))
	api.NewAccountHandler(svc.Bookings, svc.Loyalty, svc.Notifications).Register(protected.Group("/"))

	return router
}
