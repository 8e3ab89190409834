package containerservice

import (
	"context"

	"github.com/wharfdock/wharfd/internal/types"
)

// SubscribeToEvents streams container change events until ctx is cancelled.
func (s *Service) SubscribeToEvents(ctx context.Context) <-chan *types.ContainerEvent {
	events := make(chan *types.ContainerEvent)
	unsubscribe := s.containerEvents.SubscribeToEvents(func(_ context.Context, event *types.ContainerEvent) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		close(events)
	}()
	return events
}
