// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/infrastructure/store"
	"github.com/roombook/room-booking-service/internal/logging"
)

// repositories bundles the KV-backed repositories the services need.
type repositories struct {
	Event *store.NatsEventRepository
	Rule  *store.NatsRecurrenceRuleRepository
	Room  *store.NatsRoomRepository
}

// setupNATS connects to the NATS server. The connection drains on shutdown so
// in-flight handlers finish before the process exits.
func setupNATS(env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)

	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Name("room-booking-service"),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.With(logging.ErrKey, err).Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.With("url", c.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(c *nats.Conn) {
			slog.Info("NATS connection closed")
			gracefulCloseWG.Done()
			// If the connection closed before a signal arrived, the service
			// cannot serve requests anymore; shut down.
			select {
			case done <- os.Interrupt:
			default:
			}
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, err
	}

	slog.With("url", natsConn.ConnectedUrl()).Info("connected to NATS")
	return natsConn, nil
}

// getKeyValueStores creates (or binds to) the JetStream KV buckets and wraps
// them in the store repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	buckets := map[string]jetstream.KeyValue{}
	for _, name := range []string{
		store.KVStoreNameEvents,
		store.KVStoreNameRecurrenceRules,
		store.KVStoreNameRooms,
	} {
		bucket, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:  name,
			History: 1,
		})
		if err != nil {
			slog.With(logging.ErrKey, err, "bucket", name).Error("error creating KV bucket")
			return nil, err
		}
		buckets[name] = bucket
	}

	return &repositories{
		Event: store.NewNatsEventRepository(buckets[store.KVStoreNameEvents]),
		Rule:  store.NewNatsRecurrenceRuleRepository(buckets[store.KVStoreNameRecurrenceRules]),
		Room:  store.NewNatsRoomRepository(buckets[store.KVStoreNameRooms]),
	}, nil
}

// natsMsg adapts *nats.Msg to the domain.Message interface.
type natsMsg struct {
	msg *nats.Msg
}

func (m *natsMsg) Subject() string { return m.msg.Subject }
func (m *natsMsg) Data() []byte    { return m.msg.Data }
func (m *natsMsg) HasReply() bool  { return m.msg.Reply != "" }
func (m *natsMsg) Respond(data []byte) error {
	return m.msg.Respond(data)
}

// createNatsSubscriptions subscribes the handler to every API subject using a
// queue group so replicas share the load.
func createNatsSubscriptions(ctx context.Context, env environment, handler domain.MessageHandler, natsConn *nats.Conn, subjects []string) error {
	for _, subject := range subjects {
		_, err := natsConn.QueueSubscribe(subject, env.QueueName, func(msg *nats.Msg) {
			handler.HandleMessage(ctx, &natsMsg{msg: msg})
		})
		if err != nil {
			slog.With(logging.ErrKey, err, "subject", subject).Error("error subscribing to subject")
			return err
		}
		slog.With("subject", subject, "queue", env.QueueName).Debug("subscribed to subject")
	}
	return nil
}
