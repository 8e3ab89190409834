package containerservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wharfdock/wharfd/internal/types"
)

func (s *Service) Delete(ctx context.Context, name string) error {
	record, ok := s.containers.Get(name)
	if !ok {
		return types.ErrContainerNotFound
	}

	s.log.Info("deleting container", slog.String("container", name))
	if err := s.db.WithContext(ctx).Delete(&types.Container{}, "name = ?", name).Error; err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}

	s.containers.Del(name)
	s.publishEvent(ctx, types.ContainerEventTypeDeleted, record)
	return nil
}
