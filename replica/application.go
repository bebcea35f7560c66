// Package replica implements the Replica role: client-facing proposal
// origination, in-order decision draining, and commit execution against an
// external deterministic Application.
package replica

// Application is the external, deterministic state machine a Replica
// drives on commit. Execute must not be called except on commit, in slot
// order (section 6, External Interfaces).
type Application interface {
	Execute(state []byte, input []byte) (newState []byte, output []byte)
}
