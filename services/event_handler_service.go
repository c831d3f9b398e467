package services

import (
	"sync"

	"taskboard/broker"
	"taskboard/models"

	"go.uber.org/zap"
)

// EventPublisher accepts domain events from the stores. Publish must not
// block the caller.
type EventPublisher interface {
	Publish(event *models.Event)
}

// EventBroadcaster delivers an event to locally connected clients.
type EventBroadcaster interface {
	BroadcastEvent(event *models.Event)
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(*models.Event) {}

// EventHandlerService drains published events on a single goroutine. With a
// producer configured, events go to the broker and every API instance's
// websocket hub picks them up from there; without one they are handed to
// the local hub directly.
type EventHandlerService struct {
	producer broker.Producer
	local    EventBroadcaster

	events   chan *models.Event
	stopChan chan struct{}
	done     chan struct{}

	mu        sync.Mutex
	isRunning bool
}

const eventBufferSize = 256

func NewEventHandlerService(producer broker.Producer, local EventBroadcaster) *EventHandlerService {
	return &EventHandlerService{
		producer: producer,
		local:    local,
		events:   make(chan *models.Event, eventBufferSize),
	}
}

// Start launches the dispatcher. A stopped service can be started again.
func (s *EventHandlerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	go s.processPendingEvents(s.stopChan, s.done)
}

// Stop flushes queued events and waits for the dispatcher to exit.
func (s *EventHandlerService) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	close(stop)
	<-done
}

func (s *EventHandlerService) Publish(event *models.Event) {
	if event == nil {
		return
	}
	select {
	case s.events <- event:
	default:
		zap.L().Warn("event queue is full, discarding event",
			zap.String("event", event.Event), zap.String("event_id", event.ID.String()))
	}
}

func (s *EventHandlerService) processPendingEvents(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event := <-s.events:
			s.dispatch(event)
		case <-stop:
			for {
				select {
				case event := <-s.events:
					s.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

func (s *EventHandlerService) dispatch(event *models.Event) {
	if err := s.dispatchEvent(event); err != nil {
		zap.L().Error("failed to dispatch event",
			zap.String("event_id", event.ID.String()), zap.String("event", event.Event), zap.Error(err))
		return
	}
	zap.L().Debug("dispatched event",
		zap.String("event_id", event.ID.String()), zap.String("event", event.Event), zap.String("entity", event.Entity))
}

func (s *EventHandlerService) dispatchEvent(event *models.Event) error {
	if s.producer == nil {
		if s.local != nil {
			s.local.BroadcastEvent(event)
		}
		return nil
	}

	payload, err := event.ToJSON()
	if err != nil {
		return err
	}
	return s.producer.Publish(broker.TopicForEntity(event.Entity), payload)
}

// publishEvent builds an event from a resource snapshot and hands it to the
// publisher. Failures are logged; the store write has already succeeded.
func publishEvent(events EventPublisher, eventType broker.EventType, entity string, data interface{}) {
	event, err := models.NewEvent(string(eventType), entity, data)
	if err != nil {
		zap.L().Error("failed to build event", zap.String("event", string(eventType)), zap.Error(err))
		return
	}
	events.Publish(event)
}
