package types

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	coretypes "github.com/wharfdock/wharfd/core/types"
)

type (
	// Container is the stored form of a Container resource, keyed by the
	// cluster-scoped resource name. Spec and Status are persisted as whole
	// json documents; a status update always replaces the full column.
	Container struct {
		Name      string `gorm:"primaryKey"`
		Spec      *ContainerSpec
		Status    *ContainerStatus
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	ContainerSpec coretypes.ContainerSpec

	ContainerStatus coretypes.ContainerStatus

	ContainerEventType string

	ContainerEvent struct {
		ID            string `gorm:"primaryKey"`
		Type          ContainerEventType
		ContainerName string
		State         coretypes.ContainerState
		Timestamp     time.Time
	}

	ContainerApplyOptions struct {
		Name        string
		Spec        coretypes.ContainerSpec
		Annotations []coretypes.Annotation
	}

	ContainerStatusUpdateOptions struct {
		Name   string
		Status coretypes.ContainerStatus
	}

	ContainerService interface {
		List(ctx context.Context) ([]*coretypes.Container, error)

		FindByName(ctx context.Context, name string) (*coretypes.Container, error)

		Apply(ctx context.Context, opts ContainerApplyOptions) (*coretypes.Container, error)

		Create(ctx context.Context, name string, image string, annotations []coretypes.Annotation) (*coretypes.Container, error)

		UpdateStatus(ctx context.Context, opts ContainerStatusUpdateOptions) (*coretypes.Container, error)

		Delete(ctx context.Context, name string) error

		SubscribeToEvents(ctx context.Context) <-chan *ContainerEvent
	}
)

const (
	ContainerEventTypeApplied       ContainerEventType = "applied"
	ContainerEventTypeStatusChanged ContainerEventType = "status_changed"
	ContainerEventTypeDeleted       ContainerEventType = "deleted"
)

var ErrContainerNotFound = errors.New("container not found")

func (*ContainerSpec) GormDataType() string {
	return "jsonb"
}

func (s *ContainerSpec) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), &s)
}

func (s *ContainerSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ContainerSpec) ToCore() *coretypes.ContainerSpec {
	return (*coretypes.ContainerSpec)(s)
}

func (*ContainerStatus) GormDataType() string {
	return "jsonb"
}

func (s *ContainerStatus) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), &s)
}

func (s *ContainerStatus) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ContainerStatus) ToCore() *coretypes.ContainerStatus {
	return (*coretypes.ContainerStatus)(s)
}

// ToResource reassembles the API-facing resource from the stored record.
// The returned value shares nothing with the record, so callers may hold it
// across concurrent status updates.
func (c *Container) ToResource() *coretypes.Container {
	resource := &coretypes.Container{
		ResourceMeta: coretypes.ResourceMeta{
			Kind:       coretypes.ContainerKind,
			APIVersion: coretypes.GroupVersion,
			Name:       c.Name,
		},
	}
	if c.Spec != nil {
		resource.Spec = coretypes.ContainerSpec(*c.Spec)
	}
	if c.Status != nil {
		status := coretypes.ContainerStatus(*c.Status)
		resource.Status = &status
	}
	return resource
}
