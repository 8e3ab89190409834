package containerservice

import (
	"context"
	"fmt"
	"log/slog"

	coretypes "github.com/wharfdock/wharfd/core/types"
	"github.com/wharfdock/wharfd/internal/types"
)

// UpdateStatus replaces the container's observed state wholesale. The
// indexed record is swapped atomically, so concurrent readers always see an
// individually-valid snapshot, never a half-updated status.
func (s *Service) UpdateStatus(ctx context.Context, opts types.ContainerStatusUpdateOptions) (*coretypes.Container, error) {
	record, ok := s.containers.Get(opts.Name)
	if !ok {
		return nil, types.ErrContainerNotFound
	}

	s.log.Info("updating container status",
		slog.String("container", opts.Name),
		slog.String("state", string(opts.Status.State)))

	status := types.ContainerStatus(opts.Status)
	updated := *record
	updated.Status = &status
	if err := s.db.WithContext(ctx).Select("Status").Save(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to save container status: %w", err)
	}

	s.containers.Set(updated.Name, &updated)
	s.publishEvent(ctx, types.ContainerEventTypeStatusChanged, &updated)
	return updated.ToResource(), nil
}
