package kmeans

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/capkmeans/flow"
	"github.com/katalvlaran/capkmeans/network"
)

// Kind classifies clustering failures.
type Kind int

const (
	// KindInvalidConfiguration covers every input problem detected before the
	// first network is built.
	KindInvalidConfiguration Kind = iota + 1
	// KindInfeasible means the flow solver could not route all points.
	KindInfeasible
	// KindUnassignedPoint means a solved flow left a point without a cluster.
	KindUnassignedPoint
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrInvalidConfiguration = errors.New("kmeans: invalid configuration")
	ErrInfeasible           = errors.New("kmeans: infeasible assignment")
	ErrUnassignedPoint      = errors.New("kmeans: unassigned point")
)

// Config-level causes wrapped into KindInvalidConfiguration errors.
var (
	ErrBadK             = errors.New("kmeans: k must be positive")
	ErrDemandLength     = errors.New("kmeans: demand length must equal k")
	ErrBadMaxIterations = errors.New("kmeans: max iterations must be positive")
	ErrBadRestarts      = errors.New("kmeans: restarts must be positive")
	ErrUnknownInit      = errors.New("kmeans: unknown init strategy")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConfiguration:
		return "invalid configuration"
	case KindInfeasible:
		return "infeasible"
	case KindUnassignedPoint:
		return "unassigned point"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidConfiguration:
		return ErrInvalidConfiguration
	case KindInfeasible:
		return ErrInfeasible
	case KindUnassignedPoint:
		return ErrUnassignedPoint
	default:
		return nil
	}
}

// Error is the single failure type surfaced by Cluster and Assign.
type Error struct {
	Kind Kind
	Op   string // "validate", "assign", …
	Err  error  // underlying cause
}

func (e *Error) Error() string {
	return fmt.Sprintf("kmeans: %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the cause, so package sentinels such as
// network.ErrDemandExceedsPoints stay reachable through errors.Is.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinel (ErrInvalidConfiguration, …).
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return 0
}

func invalid(op string, err error) error {
	return &Error{Kind: KindInvalidConfiguration, Op: op, Err: err}
}

// classify maps a network/flow failure to its kind.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, flow.ErrInfeasible):
		return &Error{Kind: KindInfeasible, Op: op, Err: err}
	case errors.Is(err, network.ErrUnassignedPoint), errors.Is(err, network.ErrFlowLength):
		return &Error{Kind: KindUnassignedPoint, Op: op, Err: err}
	default:
		return invalid(op, err)
	}
}
