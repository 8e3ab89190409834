package types

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/nrednav/cuid2"
	"github.com/wharfdock/wharfd/core/netproto"
	"github.com/wharfdock/wharfd/core/typeutil"
)

type (
	ContainerState string

	ContainerRestartPolicy string

	VolumeMountType string

	BuildContextSecretType string

	// Container binds one desired-state spec to at most one observed-state
	// status. The status stays nil until a reconciler reports; it is only
	// ever replaced wholesale, never mutated field by field.
	Container struct {
		ResourceMeta
		Spec   ContainerSpec    `json:"spec"`
		Status *ContainerStatus `json:"status,omitempty"`
	}

	// ContainerSpec is the desired state a caller declares. Image and Build
	// may both be set; a reconciler that decides to build lets the build
	// context win.
	ContainerSpec struct {
		ContainerName string                       `json:"containerName,omitempty"`
		Image         string                       `json:"image,omitempty"`
		Build         *BuildContext                `json:"build,omitempty"`
		VolumeMounts  []VolumeMount                `json:"volumeMounts,omitempty"`
		Ports         []ContainerPortSpec          `json:"ports,omitempty"`
		Env           []ContainerEnvVar            `json:"env,omitempty"`
		EnvFiles      []string                     `json:"envFiles,omitempty"`
		RestartPolicy ContainerRestartPolicy       `json:"restartPolicy,omitempty"`
		Command       string                       `json:"command,omitempty"`
		Args          []string                     `json:"args,omitempty"`
		Labels        []ContainerLabel             `json:"labels,omitempty"`
		RunArgs       []string                     `json:"runArgs,omitempty"`
		Persistent    bool                         `json:"persistent,omitempty"`
		Networks      []ContainerNetworkConnection `json:"networks,omitempty"`
	}

	// ContainerStatus is the observed state the control plane reports back.
	ContainerStatus struct {
		GenericStatus
		ContainerName    string            `json:"containerName,omitempty"`
		State            ContainerState    `json:"state,omitempty"`
		ContainerID      string            `json:"containerId,omitempty"`
		StartupTimestamp *time.Time        `json:"startupTimestamp,omitempty"`
		FinishTimestamp  *time.Time        `json:"finishTimestamp,omitempty"`
		ExitCode         int               `json:"exitCode"`
		EffectiveEnv     []ContainerEnvVar `json:"effectiveEnv,omitempty"`
		EffectiveArgs    []string          `json:"effectiveArgs,omitempty"`
		Networks         []string          `json:"networks,omitempty"`
	}

	BuildContext struct {
		Context    string               `json:"context"`
		Dockerfile string               `json:"dockerfile,omitempty"`
		Args       []ContainerEnvVar    `json:"args,omitempty"`
		Secrets    []BuildContextSecret `json:"secrets,omitempty"`
		Stage      string               `json:"stage,omitempty"`
		Tags       []string             `json:"tags,omitempty"`
		Labels     []ContainerLabel     `json:"labels,omitempty"`
	}

	// BuildContextSecret passes a secret to the image build. Value is read
	// when Type is "env", Source when Type is "file". The type field is
	// forwarded to the build tool untouched.
	BuildContextSecret struct {
		ID     string                 `json:"id"`
		Type   BuildContextSecretType `json:"type"`
		Value  string                 `json:"value,omitempty"`
		Source string                 `json:"source,omitempty"`
	}

	// VolumeMount source is a host path for bind mounts and a volume name
	// for volume mounts.
	VolumeMount struct {
		Type     VolumeMountType `json:"type,omitempty"`
		Source   string          `json:"source,omitempty"`
		Target   string          `json:"target"`
		ReadOnly bool            `json:"readOnly,omitempty"`
	}

	ContainerPortSpec struct {
		HostPort      int32  `json:"hostPort,omitempty"`
		ContainerPort int32  `json:"containerPort"`
		Protocol      string `json:"protocol,omitempty"`
		HostIP        string `json:"hostIP,omitempty"`
	}

	// ContainerNetworkConnection attaches the container to a named network
	// resource. Reconcilers must not start the container until every
	// connection is established.
	ContainerNetworkConnection struct {
		Network string   `json:"network"`
		Aliases []string `json:"aliases,omitempty"`
	}

	ContainerLabel struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	ContainerEnvVar struct {
		Name  string `json:"name"`
		Value string `json:"value,omitempty"`
	}
)

const (
	ContainerStatePending       ContainerState = "Pending"
	ContainerStateBuilding      ContainerState = "Building"
	ContainerStateStarting      ContainerState = "Starting"
	ContainerStateFailedToStart ContainerState = "FailedToStart"
	ContainerStateRunning       ContainerState = "Running"
	ContainerStatePaused        ContainerState = "Paused"
	ContainerStateExited        ContainerState = "Exited"
	ContainerStateStopping      ContainerState = "Stopping"
	ContainerStateUnknown       ContainerState = "Unknown"

	ContainerRestartPolicyNo            ContainerRestartPolicy = "no"
	ContainerRestartPolicyOnFailure     ContainerRestartPolicy = "on-failure"
	ContainerRestartPolicyUnlessStopped ContainerRestartPolicy = "unless-stopped"
	ContainerRestartPolicyAlways        ContainerRestartPolicy = "always"

	VolumeMountTypeBind   VolumeMountType = "bind"
	VolumeMountTypeVolume VolumeMountType = "volume"

	BuildContextSecretTypeEnv  BuildContextSecretType = "env"
	BuildContextSecretTypeFile BuildContextSecretType = "file"
)

// UnknownExitCode is reported while a container has not exited.
const UnknownExitCode = -1

const defaultDockerfileName = "Dockerfile"

// NewContainer builds a managed Container resource for the given image.
// The restart policy is resolved from annotations (absent means "always",
// see ResolveRestartPolicy); the resource is cluster-scoped, so the
// namespace stays empty.
func NewContainer(name string, image string, annotations []Annotation) (*Container, error) {
	if err := ValidateResourceName(name); err != nil {
		return nil, err
	}
	if image == "" {
		return nil, fmt.Errorf("%w: image must not be empty", ErrInvalidResourceName)
	}

	return &Container{
		ResourceMeta: ResourceMeta{
			Kind:       ContainerKind,
			APIVersion: GroupVersion,
			Name:       name,
		},
		Spec: ContainerSpec{
			Image:         image,
			RestartPolicy: ResolveRestartPolicy(annotations),
			Persistent:    HasPersistentAnnotation(annotations),
		},
	}, nil
}

// NewContainerStatus is the only legal initial status: Pending, with the
// exit code still unknown.
func NewContainerStatus() ContainerStatus {
	return ContainerStatus{
		State:    ContainerStatePending,
		ExitCode: UnknownExitCode,
	}
}

var logsAvailableStates = []ContainerState{
	ContainerStateStarting,
	ContainerStateBuilding,
	ContainerStateRunning,
	ContainerStatePaused,
	ContainerStateStopping,
	ContainerStateExited,
}

// LogsAvailable reports whether log retrieval is meaningful: a runtime-level
// container object must exist. For FailedToStart that is signaled by an
// assigned container id, not by the state alone.
func (c *Container) LogsAvailable() bool {
	if c.Status == nil {
		return false
	}
	if c.Status.State == ContainerStateFailedToStart {
		return c.Status.ContainerID != ""
	}
	return typeutil.Includes(logsAvailableStates, c.Status.State)
}

// Normalize applies the spec defaults and validates the port list. It is
// idempotent; deserialized specs pass through it before use.
func (s *ContainerSpec) Normalize() error {
	if s.RestartPolicy == "" {
		s.RestartPolicy = ContainerRestartPolicyNo
	}
	for index := range s.VolumeMounts {
		s.VolumeMounts[index].Normalize()
	}
	for index := range s.Ports {
		if err := s.Ports[index].Normalize(); err != nil {
			return fmt.Errorf("port %d: %w", index, err)
		}
	}
	return nil
}

// EffectiveContainerName resolves the runtime container name, generating one
// from the resource name when the spec leaves it empty.
func (s ContainerSpec) EffectiveContainerName(resourceName string) string {
	if s.ContainerName != "" {
		return s.ContainerName
	}
	return resourceName + "-" + cuid2.Generate()
}

// Normalize defaults the mount type to a bind mount.
func (m *VolumeMount) Normalize() {
	if m.Type == "" {
		m.Type = VolumeMountTypeBind
	}
}

// Normalize defaults the protocol to TCP, canonicalizes it and checks the
// port ranges. The host port is optional; zero means unassigned.
func (p *ContainerPortSpec) Normalize() error {
	if p.Protocol == "" {
		p.Protocol = netproto.TCP
	}

	protocol, err := netproto.Canonicalize(p.Protocol)
	if err != nil {
		return err
	}
	p.Protocol = protocol

	if p.ContainerPort <= 0 || p.ContainerPort > 65535 {
		return fmt.Errorf("%w: container port %d out of range", netproto.ErrInvalidArgument, p.ContainerPort)
	}
	if p.HostPort < 0 || p.HostPort > 65535 {
		return fmt.Errorf("%w: host port %d out of range", netproto.ErrInvalidArgument, p.HostPort)
	}
	return nil
}

// DockerfilePath resolves the Dockerfile location, defaulting to a file
// named "Dockerfile" at the build context root.
func (b BuildContext) DockerfilePath() string {
	if b.Dockerfile != "" {
		return b.Dockerfile
	}
	return filepath.Join(b.Context, defaultDockerfileName)
}
