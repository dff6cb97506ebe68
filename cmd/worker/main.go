package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/seatbook/config"
	"github.com/Domenick1991/seatbook/internal/domain"
	"github.com/Domenick1991/seatbook/internal/email"
	"github.com/Domenick1991/seatbook/internal/kafka"
	"github.com/Domenick1991/seatbook/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seatbook-worker: %v", err)
	}
}

func run() error {
	cfgPath := pflag.String("config", configPathFromEnv(), "path to the YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Kafka.Enabled() || cfg.Kafka.NotificationsTopic == "" {
		return fmt.Errorf("kafka brokers and notifications_topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// journal is optional
	var journal repository.EventJournal
	if cfg.Database.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		journal = repository.NewEventJournal(pool)
		if err := journal.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	// Kafka consumer
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	notifier := &notifier{sender: email.NewSender(), journal: journal}

	log.Printf("worker consuming topic=%s group=%s", cfg.Kafka.NotificationsTopic, cfg.Kafka.GroupID)
	if err := consumer.Consume(ctx, kafka.EventHandler(notifier.handle)); err != nil {
		return fmt.Errorf("consumer stopped: %w", err)
	}
	log.Printf("worker stopped")
	return nil
}

type notifier struct {
	sender  *email.Sender
	journal repository.EventJournal
}

// handle returns an error only when journaling fails. The consumer then
// stops without committing, so the event is redelivered on restart.
func (n *notifier) handle(ctx context.Context, event domain.BookingEvent) error {
	// email failures are not fatal
	if err := n.sender.Send(ctx, event); err != nil {
		log.Printf("send email error: event=%s: %v", event.ID, err)
	}
	if n.journal != nil {
		return n.journal.Append(ctx, event)
	}
	return nil
}

func configPathFromEnv() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}
