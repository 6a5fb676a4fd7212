package advisor

import (
	"errors"
	"fmt"

	"exitplan-backend/internal/llm"
)

// FailureKind classifies why an enhancement attempt fell back.
type FailureKind string

const (
	KindConfigIncomplete FailureKind = "config_incomplete"
	KindTransport        FailureKind = "transport"
	KindProtocol         FailureKind = "protocol"
	KindDecode           FailureKind = "decode"
)

var (
	ErrConfigIncomplete = errors.New("advisor configuration incomplete")
	ErrTransport        = errors.New("advisor transport failure")
	ErrProtocol         = errors.New("advisor protocol failure")
	ErrDecode           = errors.New("advisor decode failure")
)

// Failure wraps the underlying cause with its kind. errors.Is matches both the
// kind sentinel and the cause.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("advisor %s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() []error {
	return []error{f.Kind.sentinel(), f.Err}
}

func (k FailureKind) sentinel() error {
	switch k {
	case KindConfigIncomplete:
		return ErrConfigIncomplete
	case KindProtocol:
		return ErrProtocol
	case KindDecode:
		return ErrDecode
	default:
		return ErrTransport
	}
}

func newFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// classify maps a provider client error onto the failure taxonomy.
func classify(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case errors.Is(err, llm.ErrStatus):
		return newFailure(KindProtocol, err)
	case errors.Is(err, llm.ErrMalformedResponse):
		return newFailure(KindDecode, err)
	case errors.Is(err, llm.ErrNotConfigured):
		return newFailure(KindConfigIncomplete, err)
	default:
		// network errors, timeouts and cancelled contexts
		return newFailure(KindTransport, err)
	}
}

// KindOf extracts the failure kind, or "" when err is not a Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
