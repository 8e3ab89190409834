package types

import (
	"errors"
	"fmt"
	"regexp"
)

type (
	// ResourceMeta is the envelope shared by every declarative resource the
	// control plane manages.
	ResourceMeta struct {
		Kind       string `json:"kind"`
		APIVersion string `json:"apiVersion"`
		Name       string `json:"name"`
		Namespace  string `json:"namespace,omitempty"`
	}

	// GenericStatus carries the fields every resource status reports.
	GenericStatus struct {
		Message string `json:"message,omitempty"`
	}
)

const (
	ContainerKind = "Container"
	GroupVersion  = "wharf.dev/v1"
)

var (
	ErrInvalidResourceName = errors.New("invalid resource name")

	resourceNameRegexp = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)
)

const maxResourceNameLength = 253

// ValidateResourceName enforces the naming rule shared by all resource kinds:
// lowercase alphanumerics separated by '.', '_' or '-', at most 253 chars.
func ValidateResourceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidResourceName)
	}
	if len(name) > maxResourceNameLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidResourceName, name, maxResourceNameLength)
	}
	if !resourceNameRegexp.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidResourceName, name)
	}
	return nil
}
