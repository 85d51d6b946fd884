// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/roombook/room-booking-service/internal/logging"
)

// flags are the command line flags for the booking service.
type flags struct {
	Debug bool
}

// environment are the environment variables for the booking service.
type environment struct {
	NatsURL          string
	QueueName        string
	ListWindowMonths int
	ExtendSchedule   string
}

// parseFlags parses command line flags for the booking service.
func parseFlags() flags {
	var debug = flag.Bool("d", false, "enable debug logging")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by
	// [logging.InitStructureLogConfig].
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
	}
}

// parseEnv parses environment variables for the booking service.
func parseEnv() environment {
	// A .env file is optional; variables set in the process environment win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.With(logging.ErrKey, err).Warn("error loading .env file")
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	queueName := os.Getenv("NATS_QUEUE")
	if queueName == "" {
		queueName = "roombook-booking-api"
	}

	listWindowMonths := 2
	if raw := os.Getenv("LIST_WINDOW_MONTHS"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil || months <= 0 {
			slog.With("value", raw).Warn("invalid LIST_WINDOW_MONTHS, using default")
		} else {
			listWindowMonths = months
		}
	}

	extendSchedule := os.Getenv("SERIES_EXTEND_SCHEDULE")
	if extendSchedule == "" {
		// Daily at 03:00; open-ended series get extended to the rolling
		// horizon once the clock advances.
		extendSchedule = "0 3 * * *"
	}

	return environment{
		NatsURL:          natsURL,
		QueueName:        queueName,
		ListWindowMonths: listWindowMonths,
		ExtendSchedule:   extendSchedule,
	}
}
