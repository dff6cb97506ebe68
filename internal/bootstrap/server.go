package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/seatbook/api"
	"github.com/Domenick1991/seatbook/config"
	"github.com/Domenick1991/seatbook/internal/service/booking"
	"github.com/Domenick1991/seatbook/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	swaggerSpecFile = "seatbook.swagger.json"
	shutdownTimeout = 5 * time.Second
)

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, flightSvc flights.FlightUseCase) error {
	srv := NewServer(cfg, bookingSvc, flightSvc)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("seatbook listening on %s", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewServer(cfg *config.Config, bookingSvc booking.BookingUseCase, flightSvc flights.FlightUseCase) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewHandler(cfg, bookingSvc, flightSvc),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// NewHandler returns the API router with the swagger UI mounted at /docs
// when a swagger directory is configured.
func NewHandler(cfg *config.Config, bookingSvc booking.BookingUseCase, flightSvc flights.FlightUseCase) *gin.Engine {
	router := api.NewRouter(bookingSvc, flightSvc)

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/"+swaggerSpecFile),
		)))
	}
	return router
}
