package containerservice

import (
	"context"

	coretypes "github.com/wharfdock/wharfd/core/types"
	"github.com/wharfdock/wharfd/internal/types"
)

func (s *Service) List(ctx context.Context) ([]*coretypes.Container, error) {
	var containers []*coretypes.Container
	s.containers.ForEach(func(_ string, record *types.Container) bool {
		containers = append(containers, record.ToResource())
		return true
	})
	return containers, nil
}
