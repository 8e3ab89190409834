package types

type (
	// Annotation is an opaque tagged value attached by the surrounding
	// application model. Consumers search the list for the variant they
	// understand and ignore everything else.
	Annotation interface {
		annotation()
	}

	RestartPolicyDirective int

	// RestartPolicyAnnotation carries the caller's restart-policy directive
	// for containers created through the managed factory path.
	RestartPolicyAnnotation struct {
		Directive RestartPolicyDirective
	}

	// PersistentAnnotation marks a container whose backing object should
	// outlive the declaring application.
	PersistentAnnotation struct{}
)

const (
	RestartDirectiveAlways RestartPolicyDirective = iota
	RestartDirectiveNever
	RestartDirectiveOnFailure
	RestartDirectiveUnlessStopped
)

func (RestartPolicyAnnotation) annotation() {}
func (PersistentAnnotation) annotation()    {}

// ResolveRestartPolicy finds the restart-policy directive among annotations.
// Containers created through the managed path self-heal unless explicitly
// opted out, so an absent directive resolves to "always" even though a raw
// ContainerSpec defaults to "no". Unrecognized directives degrade to "no"
// rather than failing.
func ResolveRestartPolicy(annotations []Annotation) ContainerRestartPolicy {
	for _, annotation := range annotations {
		directive, ok := annotation.(RestartPolicyAnnotation)
		if !ok {
			continue
		}

		switch directive.Directive {
		case RestartDirectiveAlways:
			return ContainerRestartPolicyAlways
		case RestartDirectiveNever:
			return ContainerRestartPolicyNo
		case RestartDirectiveOnFailure:
			return ContainerRestartPolicyOnFailure
		case RestartDirectiveUnlessStopped:
			return ContainerRestartPolicyUnlessStopped
		default:
			return ContainerRestartPolicyNo
		}
	}
	return ContainerRestartPolicyAlways
}

// HasPersistentAnnotation reports whether annotations mark the container as
// persistent.
func HasPersistentAnnotation(annotations []Annotation) bool {
	for _, annotation := range annotations {
		if _, ok := annotation.(PersistentAnnotation); ok {
			return true
		}
	}
	return false
}
