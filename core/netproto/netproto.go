// Package netproto canonicalizes network protocol strings. Every protocol
// value crossing the wire goes through Canonicalize before it is compared or
// persisted; the rest of the model never inspects raw protocol strings.
package netproto

import (
	"errors"
	"fmt"
	"strings"
)

// TransportProtocol is the closed set of transports a container port can use.
type TransportProtocol int

const (
	TransportProtocolTCP TransportProtocol = iota
	TransportProtocolUDP
)

const (
	TCP = "TCP"
	UDP = "UDP"
)

// ErrInvalidArgument is wrapped by every rejection in this package.
var ErrInvalidArgument = errors.New("invalid argument")

// Canonicalize upper-cases protocol and accepts only TCP and UDP.
func Canonicalize(protocol string) (string, error) {
	switch strings.ToUpper(protocol) {
	case TCP:
		return TCP, nil
	case UDP:
		return UDP, nil
	default:
		return "", fmt.Errorf("%w: unsupported network protocol %q", ErrInvalidArgument, protocol)
	}
}

func ToTransportProtocol(protocol string) (TransportProtocol, error) {
	canonical, err := Canonicalize(protocol)
	if err != nil {
		return 0, err
	}

	if canonical == UDP {
		return TransportProtocolUDP, nil
	}
	return TransportProtocolTCP, nil
}

// FromTransportProtocol is total over the two transports; anything else is
// unreachable through the exported constructors but still rejected.
func FromTransportProtocol(protocol TransportProtocol) (string, error) {
	switch protocol {
	case TransportProtocolTCP:
		return TCP, nil
	case TransportProtocolUDP:
		return UDP, nil
	default:
		return "", fmt.Errorf("%w: unknown transport protocol %d", ErrInvalidArgument, protocol)
	}
}
