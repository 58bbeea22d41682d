package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telemed-be/internal/model"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/repository"
	"telemed-be/pkg/events"
	pktNats "telemed-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventConsumerService turns domain events from the bus into stored
// notifications and pushes them to connected clients.
type EventConsumerService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	subscriber    *pktNats.Subscriber
	delivery      NotificationDelivery
	logger        logger.ILogger
}

func NewEventConsumerService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	subscriber *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) *EventConsumerService {
	return &EventConsumerService{
		notifications: notifications,
		users:         users,
		subscriber:    subscriber,
		delivery:      delivery,
		logger:        log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *EventConsumerService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("EventConsumerService", "Failed to start event subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("EventConsumerService", "Event consumer started, listening to events.>", nil)
}

func (s *EventConsumerService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("EventConsumerService", fmt.Sprintf("Processing event: %s", event.EventType()), nil)

	switch event.EventType() {
	case events.TypeUserRegistered:
		return s.handleUserRegistered(ctx, event)
	case events.TypeTeleconsultationEnded:
		return s.handleTeleconsultationEnded(ctx, event)
	case events.TypeAssistantSessionEnded:
		return s.notifyAdmins(ctx, event, "Session assistant terminée",
			"Une session avec l'assistant santé vient de se terminer.")
	case events.TypeSystemBroadcast:
		return s.handleBroadcast(event)
	default:
		// Appointment events are delivered synchronously by the
		// scheduling flow; nothing to do here.
		return nil
	}
}

func (s *EventConsumerService) handleUserRegistered(ctx context.Context, event events.Event) error {
	userID, ok := payloadUUID(event, "user_id")
	if !ok {
		s.logger.Warn("EventConsumerService", "USER_REGISTERED event without user_id", map[string]interface{}{"payload": event.Payload()})
		return nil
	}

	notif := s.buildNotification(userID, event.EventType(),
		"Bienvenue",
		"Bienvenue sur la plateforme de télémédecine. Complétez votre profil pour commencer.",
		event.Payload())
	return s.deliver(ctx, userID, notif)
}

func (s *EventConsumerService) handleTeleconsultationEnded(ctx context.Context, event events.Event) error {
	userID, ok := payloadUUID(event, "user_id")
	if !ok {
		return nil
	}

	notif := s.buildNotification(userID, event.EventType(),
		"Téléconsultation terminée",
		"Votre téléconsultation est terminée. Un résumé vous sera envoyé par email.",
		event.Payload())
	return s.deliver(ctx, userID, notif)
}

func (s *EventConsumerService) notifyAdmins(ctx context.Context, event events.Event, title, message string) error {
	admins, err := s.users.GetByRole(ctx, "admin")
	if err != nil {
		s.logger.Error("EventConsumerService", "Failed to resolve admin recipients", map[string]interface{}{"error": err})
		return err
	}

	for _, admin := range admins {
		notif := s.buildNotification(admin.Id, event.EventType(), title, message, event.Payload())
		if err := s.deliver(ctx, admin.Id, notif); err != nil {
			s.logger.Error("EventConsumerService", fmt.Sprintf("Failed to notify admin %s", admin.Id), map[string]interface{}{"error": err})
		}
	}
	return nil
}

// handleBroadcast pushes a system-wide notice to every connected
// client without persisting per-user rows.
func (s *EventConsumerService) handleBroadcast(event events.Event) error {
	payload := event.Payload()
	title, _ := payload["title"].(string)
	message, _ := payload["message"].(string)
	if title == "" || message == "" {
		return nil
	}

	notif := s.buildNotification(uuid.Nil, event.EventType(), title, message, payload)
	if s.delivery != nil {
		s.delivery.Broadcast(notif)
	}
	return nil
}

func (s *EventConsumerService) deliver(ctx context.Context, userID uuid.UUID, notif model.Notification) error {
	if err := s.notifications.CreateNotification(ctx, &notif); err != nil {
		return err
	}
	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}
	return nil
}

func (s *EventConsumerService) buildNotification(userID uuid.UUID, typeCode, title, message string, payload map[string]interface{}) model.Notification {
	metaJSON, _ := json.Marshal(payload)
	return model.Notification{
		Id:        uuid.New(),
		UserId:    userID,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: time.Now(),
		IsRead:    false,
	}
}

func payloadUUID(event events.Event, key string) (uuid.UUID, bool) {
	str, ok := event.Payload()[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
