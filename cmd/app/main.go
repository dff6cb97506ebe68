package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/seatbook/config"
	"github.com/Domenick1991/seatbook/internal/bootstrap"
	"github.com/Domenick1991/seatbook/internal/cache"
	"github.com/Domenick1991/seatbook/internal/kafka"
	"github.com/Domenick1991/seatbook/internal/repository"
	"github.com/Domenick1991/seatbook/internal/service/booking"
	"github.com/Domenick1991/seatbook/internal/service/flights"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seatbook: %v", err)
	}
}

func run() error {
	cfgPath := pflag.String("config", configPathFromEnv(), "path to the YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := repository.NewMemoryBookingStore(cfg.Booking.SeatCapacity)
	log.Printf("booking store ready: seat_capacity=%d", store.Capacity())

	var bookingOpts []booking.BookingServiceOption
	var manifestCache flights.ManifestCache
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ManifestCacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("WARNING: redis %s unreachable, manifests will be read from the store: %v", cfg.Redis.Addr, err)
		}
		manifestCache = redisCache
		bookingOpts = append(bookingOpts, booking.WithManifestCache(redisCache))
	}

	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("WARNING: kafka unreachable, booking events may be dropped: %v", err)
		}
		bookingOpts = append(bookingOpts, booking.WithEvents(producer, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic))
	}

	bookingService := booking.NewBookingService(store, bookingOpts...)
	flightService := flights.NewFlightService(store, manifestCache)

	return bootstrap.Run(ctx, cfg, bookingService, flightService)
}

func configPathFromEnv() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}
