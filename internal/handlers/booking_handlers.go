// Copyright The RoomBook Authors.
// SPDX-License-Identifier: MIT

// Package handlers contains the NATS message handlers that expose the
// booking operations to callers.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/roombook/room-booking-service/internal/domain"
	"github.com/roombook/room-booking-service/internal/domain/models"
	"github.com/roombook/room-booking-service/internal/infrastructure/ical"
	"github.com/roombook/room-booking-service/internal/logging"
	"github.com/roombook/room-booking-service/internal/service"
)

// CreateEventRequest is the payload for the event-create subject.
type CreateEventRequest struct {
	Event      models.Event               `json:"event"`
	Recurrence *service.RecurrenceOptions `json:"recurrence,omitempty"`
}

// CreateEventResponse is the reply for the event-create subject.
type CreateEventResponse struct {
	Event *models.Event          `json:"event"`
	Rule  *models.RecurrenceRule `json:"rule,omitempty"`
}

// SetSeriesEndRequest is the payload for the series-set-end subject.
type SetSeriesEndRequest struct {
	EventUID string     `json:"event_uid"`
	EndDate  *time.Time `json:"end_date,omitempty"`
}

// SetSeriesEndResponse is the reply for the series-set-end subject.
type SetSeriesEndResponse struct {
	CreatedCount int      `json:"created_count"`
	DeletedUIDs  []string `json:"deleted_uids,omitempty"`
}

// AvailabilityRequest is the payload for the room-availability subject.
type AvailabilityRequest struct {
	RoomUID        string    `json:"room_uid"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	ExcludeRuleUID string    `json:"exclude_rule_uid,omitempty"`
}

// AvailabilityResponse is the reply for the room-availability subject.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// ListEventsRequest is the payload for the event-list subject.
type ListEventsRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ErrorResponse is the reply envelope for failed requests.
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

var errorTypeNames = map[domain.ErrorType]string{
	domain.ErrorTypeValidation:  "validation",
	domain.ErrorTypeNotFound:    "not_found",
	domain.ErrorTypeConflict:    "conflict",
	domain.ErrorTypeInternal:    "internal",
	domain.ErrorTypeUnavailable: "unavailable",
}

// BookingHandler handles booking-related messages.
type BookingHandler struct {
	eventService        *service.EventService
	roomService         *service.RoomService
	availabilityService *service.AvailabilityService
	calendarGenerator   *ical.Generator
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(
	eventService *service.EventService,
	roomService *service.RoomService,
	availabilityService *service.AvailabilityService,
) *BookingHandler {
	return &BookingHandler{
		eventService:        eventService,
		roomService:         roomService,
		availabilityService: availabilityService,
		calendarGenerator:   ical.NewGenerator(),
	}
}

// HandlerReady checks if the handler's services are ready.
func (h *BookingHandler) HandlerReady() bool {
	return h.eventService.ServiceReady() &&
		h.roomService.ServiceReady() &&
		h.availabilityService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler interface
func (h *BookingHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.EventCreateSubject:      h.HandleEventCreate,
		models.EventUpdateSubject:      h.HandleEventUpdate,
		models.EventDeleteSubject:      h.HandleEventDelete,
		models.EventGetSubject:         h.HandleEventGet,
		models.EventListSubject:        h.HandleEventList,
		models.EventICSSubject:         h.HandleEventICS,
		models.SeriesSetEndSubject:     h.HandleSeriesSetEnd,
		models.RoomAvailabilitySubject: h.HandleRoomAvailability,
		models.RoomCreateSubject:       h.HandleRoomCreate,
		models.RoomListSubject:         h.HandleRoomList,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		h.respond(ctx, msg, nil)
		return
	}

	response, err := handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling message", logging.ErrKey, err)
		h.respond(ctx, msg, errorPayload(err))
		return
	}

	h.respond(ctx, msg, response)
}

func (h *BookingHandler) respond(ctx context.Context, msg domain.Message, response []byte) {
	if !msg.HasReply() {
		slog.DebugContext(ctx, "handled NATS message (no reply expected)")
		return
	}
	if err := msg.Respond(response); err != nil {
		slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
	}
}

func errorPayload(err error) []byte {
	payload, marshalErr := json.Marshal(ErrorResponse{
		Error:     err.Error(),
		ErrorType: errorTypeNames[domain.GetErrorType(err)],
	})
	if marshalErr != nil {
		return nil
	}
	return payload
}

// HandleEventCreate is the message handler for the event-create subject.
func (h *BookingHandler) HandleEventCreate(ctx context.Context, msg domain.Message) ([]byte, error) {
	var req CreateEventRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling create event request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid create event payload", err)
	}

	event, rule, err := h.eventService.CreateEvent(ctx, &req.Event, req.Recurrence)
	if err != nil {
		return nil, err
	}

	return json.Marshal(CreateEventResponse{Event: event, Rule: rule})
}

// HandleEventUpdate is the message handler for the event-update subject.
func (h *BookingHandler) HandleEventUpdate(ctx context.Context, msg domain.Message) ([]byte, error) {
	var event models.Event
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling update event request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid update event payload", err)
	}

	updated, err := h.eventService.UpdateEvent(ctx, &event)
	if err != nil {
		return nil, err
	}

	return json.Marshal(updated)
}

// HandleEventDelete is the message handler for the event-delete subject.
// The payload is the event UID.
func (h *BookingHandler) HandleEventDelete(ctx context.Context, msg domain.Message) ([]byte, error) {
	eventUID := string(msg.Data())
	if eventUID == "" {
		return nil, domain.NewValidationError("event UID is required")
	}
	ctx = logging.AppendCtx(ctx, slog.String("event_uid", eventUID))

	if err := h.eventService.DeleteEvent(ctx, eventUID); err != nil {
		return nil, err
	}
	return []byte(`{"deleted":true}`), nil
}

// HandleEventGet is the message handler for the event-get subject.
// The payload is the event UID.
func (h *BookingHandler) HandleEventGet(ctx context.Context, msg domain.Message) ([]byte, error) {
	eventUID := string(msg.Data())
	if eventUID == "" {
		return nil, domain.NewValidationError("event UID is required")
	}
	ctx = logging.AppendCtx(ctx, slog.String("event_uid", eventUID))

	event, err := h.eventService.GetEvent(ctx, eventUID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(event)
}

// HandleEventICS is the message handler for the event-ics subject. The
// payload is the event UID; the reply is the iCalendar document. For a series
// instance the reply covers the whole series via an RRULE on the anchor.
func (h *BookingHandler) HandleEventICS(ctx context.Context, msg domain.Message) ([]byte, error) {
	eventUID := string(msg.Data())
	if eventUID == "" {
		return nil, domain.NewValidationError("event UID is required")
	}
	ctx = logging.AppendCtx(ctx, slog.String("event_uid", eventUID))

	event, rule, err := h.eventService.GetEventWithRule(ctx, eventUID)
	if err != nil {
		return nil, err
	}

	doc, err := h.calendarGenerator.EventCalendar(event, rule)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// HandleEventList is the message handler for the event-list subject.
func (h *BookingHandler) HandleEventList(ctx context.Context, msg domain.Message) ([]byte, error) {
	var req ListEventsRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling list events request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid list events payload", err)
	}

	events, err := h.eventService.ListEventsBetween(ctx, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return json.Marshal(events)
}

// HandleSeriesSetEnd is the message handler for the series-set-end subject.
func (h *BookingHandler) HandleSeriesSetEnd(ctx context.Context, msg domain.Message) ([]byte, error) {
	var req SetSeriesEndRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling set series end request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid set series end payload", err)
	}
	if req.EventUID == "" {
		return nil, domain.NewValidationError("event UID is required")
	}
	ctx = logging.AppendCtx(ctx, slog.String("event_uid", req.EventUID))

	delta, err := h.eventService.UpdateSeriesEnd(ctx, req.EventUID, req.EndDate)
	if err != nil {
		return nil, err
	}

	return json.Marshal(SetSeriesEndResponse{
		CreatedCount: len(delta.Created),
		DeletedUIDs:  delta.DeletedUIDs,
	})
}

// HandleRoomCreate is the message handler for the room-create subject.
func (h *BookingHandler) HandleRoomCreate(ctx context.Context, msg domain.Message) ([]byte, error) {
	var room models.Room
	if err := json.Unmarshal(msg.Data(), &room); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling create room request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid create room payload", err)
	}

	created, err := h.roomService.CreateRoom(ctx, &room)
	if err != nil {
		return nil, err
	}
	return json.Marshal(created)
}

// HandleRoomList is the message handler for the room-list subject.
func (h *BookingHandler) HandleRoomList(ctx context.Context, msg domain.Message) ([]byte, error) {
	rooms, err := h.roomService.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rooms)
}

// HandleRoomAvailability is the message handler for the room-availability subject.
func (h *BookingHandler) HandleRoomAvailability(ctx context.Context, msg domain.Message) ([]byte, error) {
	var req AvailabilityRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling availability request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid availability payload", err)
	}
	if req.RoomUID == "" {
		return nil, domain.NewValidationError("room UID is required")
	}
	ctx = logging.AppendCtx(ctx, slog.String("room_uid", req.RoomUID))

	interval := models.Interval{Start: req.Start, End: req.End}
	if !interval.Valid() {
		return nil, domain.NewValidationError("interval end must be after start")
	}

	available, err := h.availabilityService.IsRoomAvailable(ctx, req.RoomUID, interval, service.CheckOptions{
		ExcludeRuleUID: req.ExcludeRuleUID,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(AvailabilityResponse{Available: available})
}
