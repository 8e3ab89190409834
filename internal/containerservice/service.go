package containerservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/nrednav/cuid2"
	"github.com/wharfdock/wharfd/core/eventbus"
	"github.com/wharfdock/wharfd/internal/types"
	"gorm.io/gorm"
)

// Service owns the declarative Container resources: it persists them,
// keeps an in-memory index and fans change events out to subscribers.
// It never talks to a container runtime; statuses only arrive from the
// outside through UpdateStatus.
type Service struct {
	log                   *slog.Logger
	db                    *gorm.DB
	config                *types.Config
	containers            *haxmap.Map[string, *types.Container]
	containerEvents       *eventbus.Bus[*types.ContainerEvent]
	cancelEventDispatcher context.CancelFunc
}

var _ types.ContainerService = (*Service)(nil)

func New(db *gorm.DB, config *types.Config) *Service {
	return &Service{
		log:             slog.With(slog.String("component", "containerservice")),
		db:              db,
		config:          config,
		containers:      haxmap.New[string, *types.Container](),
		containerEvents: eventbus.NewBus[*types.ContainerEvent](),
	}
}

func (s *Service) Start(ctx context.Context) error {
	eventDispatcherCtx, cancelEventDispatcher := context.WithCancel(context.Background())
	go s.containerEvents.StartDispatcher(eventDispatcherCtx)
	s.cancelEventDispatcher = cancelEventDispatcher

	if err := s.loadContainers(ctx); err != nil {
		return fmt.Errorf("failed to load containers: %w", err)
	}
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	if s.cancelEventDispatcher != nil {
		s.cancelEventDispatcher()
	}
	return nil
}

func (s *Service) loadContainers(ctx context.Context) error {
	s.log.Info("loading containers")

	var containers []*types.Container
	if err := s.db.WithContext(ctx).Find(&containers).Error; err != nil {
		return fmt.Errorf("failed to retrieve containers: %w", err)
	}

	for _, container := range containers {
		s.containers.Set(container.Name, container)
	}
	return nil
}

func (s *Service) publishEvent(ctx context.Context, eventType types.ContainerEventType, record *types.Container) {
	event := &types.ContainerEvent{
		ID:            cuid2.Generate(),
		Type:          eventType,
		ContainerName: record.Name,
		Timestamp:     time.Now(),
	}
	if record.Status != nil {
		event.State = record.Status.ToCore().State
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		s.log.Error("failed to insert container event", slog.Any("error", err))
	}
	s.containerEvents.PublishEvent(event)
}
