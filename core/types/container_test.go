package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wharfdock/wharfd/core/typeutil"
)

func TestNewContainerDefaults(t *testing.T) {
	container, err := NewContainer("web", "nginx:latest", nil)
	require.NoError(t, err)

	assert.Equal(t, ContainerKind, container.Kind)
	assert.Equal(t, GroupVersion, container.APIVersion)
	assert.Equal(t, "web", container.Name)
	assert.Empty(t, container.Namespace)
	assert.Equal(t, "nginx:latest", container.Spec.Image)
	assert.Equal(t, ContainerRestartPolicyAlways, container.Spec.RestartPolicy)
	assert.False(t, container.Spec.Persistent)
	assert.Nil(t, container.Status)
}

func TestNewContainerRestartPolicyFromAnnotations(t *testing.T) {
	tests := []struct {
		name        string
		annotations []Annotation
		expected    ContainerRestartPolicy
	}{
		{"absent defaults to always", nil, ContainerRestartPolicyAlways},
		{"never", []Annotation{RestartPolicyAnnotation{Directive: RestartDirectiveNever}}, ContainerRestartPolicyNo},
		{"always", []Annotation{RestartPolicyAnnotation{Directive: RestartDirectiveAlways}}, ContainerRestartPolicyAlways},
		{"on failure", []Annotation{RestartPolicyAnnotation{Directive: RestartDirectiveOnFailure}}, ContainerRestartPolicyOnFailure},
		{"unless stopped", []Annotation{RestartPolicyAnnotation{Directive: RestartDirectiveUnlessStopped}}, ContainerRestartPolicyUnlessStopped},
		{"unrecognized directive degrades to no", []Annotation{RestartPolicyAnnotation{Directive: RestartPolicyDirective(99)}}, ContainerRestartPolicyNo},
		{"other annotations are skipped", []Annotation{PersistentAnnotation{}, RestartPolicyAnnotation{Directive: RestartDirectiveNever}}, ContainerRestartPolicyNo},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			container, err := NewContainer("web", "nginx:latest", test.annotations)
			require.NoError(t, err)
			assert.Equal(t, test.expected, container.Spec.RestartPolicy)
		})
	}
}

func TestNewContainerPersistentAnnotation(t *testing.T) {
	container, err := NewContainer("db", "postgres:16", []Annotation{PersistentAnnotation{}})
	require.NoError(t, err)
	assert.True(t, container.Spec.Persistent)
}

func TestNewContainerValidation(t *testing.T) {
	_, err := NewContainer("Invalid Name", "nginx:latest", nil)
	assert.ErrorIs(t, err, ErrInvalidResourceName)

	_, err = NewContainer("web", "", nil)
	assert.ErrorIs(t, err, ErrInvalidResourceName)
}

func TestNewContainerStatusDefaults(t *testing.T) {
	status := NewContainerStatus()
	assert.Equal(t, ContainerStatePending, status.State)
	assert.Equal(t, UnknownExitCode, status.ExitCode)
	assert.Empty(t, status.ContainerID)
}

func TestLogsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		status   *ContainerStatus
		expected bool
	}{
		{"absent status", nil, false},
		{"pending", &ContainerStatus{State: ContainerStatePending}, false},
		{"unknown", &ContainerStatus{State: ContainerStateUnknown}, false},
		{"building", &ContainerStatus{State: ContainerStateBuilding}, true},
		{"starting", &ContainerStatus{State: ContainerStateStarting}, true},
		{"running", &ContainerStatus{State: ContainerStateRunning}, true},
		{"paused", &ContainerStatus{State: ContainerStatePaused}, true},
		{"stopping", &ContainerStatus{State: ContainerStateStopping}, true},
		{"exited", &ContainerStatus{State: ContainerStateExited}, true},
		{"failed to start without id", &ContainerStatus{State: ContainerStateFailedToStart}, false},
		{"failed to start with id", &ContainerStatus{State: ContainerStateFailedToStart, ContainerID: "f3a1"}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			container := Container{Status: test.status}
			assert.Equal(t, test.expected, container.LogsAvailable())
		})
	}
}

func TestContainerPortSpecNormalize(t *testing.T) {
	t.Run("defaults protocol to TCP", func(t *testing.T) {
		port := ContainerPortSpec{ContainerPort: 80}
		require.NoError(t, port.Normalize())
		assert.Equal(t, "TCP", port.Protocol)
	})

	t.Run("canonicalizes protocol and is idempotent", func(t *testing.T) {
		port := ContainerPortSpec{ContainerPort: 53, Protocol: "udp"}
		require.NoError(t, port.Normalize())
		assert.Equal(t, "UDP", port.Protocol)
		require.NoError(t, port.Normalize())
		assert.Equal(t, "UDP", port.Protocol)
	})

	t.Run("rejects unknown protocols", func(t *testing.T) {
		port := ContainerPortSpec{ContainerPort: 80, Protocol: "sctp"}
		assert.Error(t, port.Normalize())
	})

	t.Run("validates port ranges", func(t *testing.T) {
		for _, port := range []ContainerPortSpec{
			{ContainerPort: 0},
			{ContainerPort: 65536},
			{ContainerPort: -80},
			{ContainerPort: 80, HostPort: 65536},
			{ContainerPort: 80, HostPort: -1},
		} {
			assert.Error(t, port.Normalize(), "port spec %+v", port)
		}
	})

	t.Run("host port is optional", func(t *testing.T) {
		port := ContainerPortSpec{ContainerPort: 80}
		require.NoError(t, port.Normalize())
		assert.Zero(t, port.HostPort)
	})
}

func TestContainerSpecNormalize(t *testing.T) {
	spec := ContainerSpec{
		Image:        "nginx:latest",
		VolumeMounts: []VolumeMount{{Source: "/srv/data", Target: "/data"}},
		Ports:        []ContainerPortSpec{{ContainerPort: 80, Protocol: "tcp"}},
	}
	require.NoError(t, spec.Normalize())

	assert.Equal(t, ContainerRestartPolicyNo, spec.RestartPolicy)
	assert.Equal(t, VolumeMountTypeBind, spec.VolumeMounts[0].Type)
	assert.False(t, spec.VolumeMounts[0].ReadOnly)
	assert.Equal(t, "TCP", spec.Ports[0].Protocol)

	spec.Ports = append(spec.Ports, ContainerPortSpec{ContainerPort: 90000})
	assert.Error(t, spec.Normalize())
}

func TestEffectiveContainerName(t *testing.T) {
	spec := ContainerSpec{ContainerName: "custom"}
	assert.Equal(t, "custom", spec.EffectiveContainerName("web"))

	generated := ContainerSpec{}.EffectiveContainerName("web")
	assert.True(t, strings.HasPrefix(generated, "web-"))
	assert.Greater(t, len(generated), len("web-"))
}

func TestBuildContextDockerfilePath(t *testing.T) {
	assert.Equal(t, "/src/app/Dockerfile", BuildContext{Context: "/src/app"}.DockerfilePath())
	assert.Equal(t, "/src/app/build.Dockerfile",
		BuildContext{Context: "/src/app", Dockerfile: "/src/app/build.Dockerfile"}.DockerfilePath())
}

func TestContainerWireFormat(t *testing.T) {
	container, err := NewContainer("web", "nginx:latest", nil)
	require.NoError(t, err)
	container.Spec.Ports = []ContainerPortSpec{{HostPort: 8080, ContainerPort: 80, Protocol: "TCP"}}
	container.Status = typeutil.Ptr(NewContainerStatus())

	payload, err := json.Marshal(container)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "Container", decoded["kind"])
	assert.Equal(t, GroupVersion, decoded["apiVersion"])
	assert.NotContains(t, decoded, "namespace")

	spec := decoded["spec"].(map[string]any)
	assert.Equal(t, "always", spec["restartPolicy"])
	assert.NotContains(t, spec, "containerName")

	port := spec["ports"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(8080), port["hostPort"])
	assert.Equal(t, float64(80), port["containerPort"])
	assert.Equal(t, "TCP", port["protocol"])

	status := decoded["status"].(map[string]any)
	assert.Equal(t, "Pending", status["state"])
	assert.Equal(t, float64(-1), status["exitCode"])
	assert.NotContains(t, status, "containerId")
}

func TestContainerPortSpecWireRoundTrip(t *testing.T) {
	var port ContainerPortSpec
	require.NoError(t, json.Unmarshal([]byte(`{"hostPort":8080,"containerPort":53,"protocol":"udp"}`), &port))
	require.NoError(t, port.Normalize())
	assert.Equal(t, "UDP", port.Protocol)

	payload, err := json.Marshal(port)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hostPort":8080,"containerPort":53,"protocol":"UDP"}`, string(payload))
}
