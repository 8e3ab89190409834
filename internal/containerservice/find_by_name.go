package containerservice

import (
	"context"

	coretypes "github.com/wharfdock/wharfd/core/types"
	"github.com/wharfdock/wharfd/internal/types"
)

func (s *Service) FindByName(ctx context.Context, name string) (*coretypes.Container, error) {
	record, ok := s.containers.Get(name)
	if !ok {
		return nil, types.ErrContainerNotFound
	}

	return record.ToResource(), nil
}
