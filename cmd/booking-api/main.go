// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

// Package main is the booking service API. It serves the booking operations
// over NATS request/reply and runs the scheduled extension of open-ended
// recurring series.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/robfig/cron/v3"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/internal/handlers"
	"github.com/roombook/room-booking-service/internal/infrastructure/messaging"
	"github.com/roombook/room-booking-service/internal/logging"
	"github.com/roombook/room-booking-service/internal/service"
)

func main() {
	env := parseEnv()
	parseFlags()

	logging.InitStructureLogConfig()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	serviceConfig := service.ServiceConfig{
		ListWindowMonths: env.ListWindowMonths,
	}
	clock := domain.SystemClock{}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	occurrenceService := service.NewOccurrenceService()
	availabilityService := service.NewAvailabilityService(repos.Room, repos.Event)
	syncService := service.NewRecurrenceSyncService(
		repos.Event,
		repos.Rule,
		occurrenceService,
		clock,
	)
	eventService := service.NewEventService(
		repos.Event,
		repos.Rule,
		repos.Room,
		messageBuilder,
		occurrenceService,
		availabilityService,
		syncService,
		clock,
		serviceConfig,
	)
	roomService := service.NewRoomService(
		repos.Room,
		repos.Event,
		messageBuilder,
		clock,
	)

	// Initialize the message handler and subscribe to the API subjects.
	bookingHandler := handlers.NewBookingHandler(
		eventService,
		roomService,
		availabilityService,
	)

	subjects := []string{
		models.EventCreateSubject,
		models.EventUpdateSubject,
		models.EventDeleteSubject,
		models.EventGetSubject,
		models.EventListSubject,
		models.EventICSSubject,
		models.SeriesSetEndSubject,
		models.RoomAvailabilitySubject,
		models.RoomCreateSubject,
		models.RoomListSubject,
	}
	if err := createNatsSubscriptions(ctx, env, bookingHandler, natsConn, subjects); err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	// Schedule the extension of open-ended series so the rolling generation
	// window keeps moving as time advances.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(env.ExtendSchedule, func() {
		if err := syncService.ExtendOpenRules(ctx); err != nil {
			slog.With(logging.ErrKey, err).Error("error extending open series")
		}
	})
	if err != nil {
		slog.With(logging.ErrKey, err, "schedule", env.ExtendSchedule).Error("error scheduling series extension")
		return
	}
	scheduler.Start()

	slog.Info("booking service ready", "queue", env.QueueName)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(scheduler, natsConn, &gracefulCloseWG, cancel)
}

// gracefulShutdown stops the scheduler, drains the NATS connection, and
// waits for in-flight work to finish.
func gracefulShutdown(scheduler *cron.Cron, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down")

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		slog.Warn("timed out waiting for scheduled jobs to finish")
	}

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}

	cancel()
	gracefulCloseWG.Wait()
}
