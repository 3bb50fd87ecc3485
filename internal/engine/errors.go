// Package engine implements the instruction dispatcher: the thin state
// machine exposing initialise/shield/unshield/unshield_with_change/
// private_transfer and the value-conservation rules that bind proof public
// inputs to asset movements (spec §4.6).
package engine

import "fmt"

// Kind enumerates the error kinds the engine returns (spec §7). The host
// ledger surfaces Kind to the caller and reverts all state for the
// instruction; the engine never retries internally.
type Kind int

const (
	_ Kind = iota
	KindAlreadyInitialised
	KindNotInitialised
	KindTreeFull
	KindStaleRoot
	KindDuplicateNullifier
	KindInvalidProof
	KindAmountOutOfRange
	KindBelowMinimum
	KindInsufficientVault
	KindMalformedInstruction
)

func (k Kind) String() string {
	switch k {
	case KindAlreadyInitialised:
		return "AlreadyInitialised"
	case KindNotInitialised:
		return "NotInitialised"
	case KindTreeFull:
		return "TreeFull"
	case KindStaleRoot:
		return "StaleRoot"
	case KindDuplicateNullifier:
		return "DuplicateNullifier"
	case KindInvalidProof:
		return "InvalidProof"
	case KindAmountOutOfRange:
		return "AmountOutOfRange"
	case KindBelowMinimum:
		return "BelowMinimum"
	case KindInsufficientVault:
		return "InsufficientVault"
	case KindMalformedInstruction:
		return "MalformedInstruction"
	default:
		return "Unknown"
	}
}

// Error is the engine's single error type; every failure path returns one,
// never a bare sentinel, so callers can always recover the Kind via As.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("engine: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("engine: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, engine.ErrKind(KindStaleRoot)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(k Kind, cause error) *Error {
	return &Error{Kind: k, Cause: cause}
}

// ErrKind constructs a bare *Error of the given kind, for use with errors.Is.
func ErrKind(k Kind) *Error {
	return &Error{Kind: k}
}
