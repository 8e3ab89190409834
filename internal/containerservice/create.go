package containerservice

import (
	"context"

	coretypes "github.com/wharfdock/wharfd/core/types"
	"github.com/wharfdock/wharfd/internal/types"
)

// Create runs the managed factory path: the restart policy comes from the
// annotations (defaulting to "always") instead of the raw spec default.
func (s *Service) Create(ctx context.Context, name string, image string, annotations []coretypes.Annotation) (*coretypes.Container, error) {
	resource, err := coretypes.NewContainer(name, image, annotations)
	if err != nil {
		return nil, err
	}

	return s.Apply(ctx, types.ContainerApplyOptions{
		Name: resource.Name,
		Spec: resource.Spec,
	})
}
