package tyjson

import "fmt"

// MalformedDescriptorError reports a descriptor that is not a member of
// the algebra or violates an invariant (bad default, non-keyable map key,
// non-JSON-primitive literal constant where encodability was required).
// The trail is ordered innermost first.
type MalformedDescriptorError struct {
	Descriptor string
	Trail      []Reason
}

func (e *MalformedDescriptorError) Error() string {
	if len(e.Trail) == 0 {
		return fmt.Sprintf("tyjson: malformed descriptor %s", e.Descriptor)
	}
	return fmt.Sprintf("tyjson: malformed descriptor %s: %s", e.Descriptor, trailString(e.Trail))
}

// NonConformingError reports a value that does not match a valid
// descriptor, or an interchange blob that does not match the expected
// encoding shape during decode. The trail is ordered innermost first.
type NonConformingError struct {
	Descriptor string
	Trail      []Reason
}

func (e *NonConformingError) Error() string {
	if len(e.Trail) == 0 {
		return fmt.Sprintf("tyjson: value does not conform to %s", e.Descriptor)
	}
	return fmt.Sprintf("tyjson: value does not conform to %s: %s", e.Descriptor, trailString(e.Trail))
}

func malformed(d *Descriptor, trail []Reason) error {
	return &MalformedDescriptorError{Descriptor: d.String(), Trail: trail}
}

func nonConforming(d *Descriptor, trail []Reason) error {
	return &NonConformingError{Descriptor: d.String(), Trail: trail}
}
