package containerservice

import (
	"context"
	"fmt"
	"log/slog"

	coretypes "github.com/wharfdock/wharfd/core/types"
	"github.com/wharfdock/wharfd/internal/types"
)

// Apply declares the desired state for the named container, creating the
// resource or replacing its spec. An existing status survives a re-apply;
// reconciliation against the new spec is the reconciler's business.
func (s *Service) Apply(ctx context.Context, opts types.ContainerApplyOptions) (*coretypes.Container, error) {
	s.log.Info("applying container spec", slog.String("container", opts.Name))

	if err := coretypes.ValidateResourceName(opts.Name); err != nil {
		return nil, err
	}

	spec := opts.Spec
	if err := spec.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid container spec: %w", err)
	}
	spec.ContainerName = spec.EffectiveContainerName(opts.Name)

	record := &types.Container{
		Name: opts.Name,
		Spec: (*types.ContainerSpec)(&spec),
	}
	if existing, ok := s.containers.Get(opts.Name); ok {
		record.Status = existing.Status
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("failed to save container: %w", err)
	}

	s.containers.Set(record.Name, record)
	s.publishEvent(ctx, types.ContainerEventTypeApplied, record)
	return record.ToResource(), nil
}
