package paxos

import (
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// Role is anything a Node can dispatch inbound messages to. Per the
// REDESIGN FLAGS note, there is no reflection-based lookup by method name:
// a Role type-switches over the Message variants it cares about inside
// Deliver and silently ignores the rest.
type Role interface {
	Deliver(from Address, msg Message)
}

// TimerHandle cancels a scheduled callback. Cancelling after the callback
// has already fired is a no-op.
type TimerHandle interface {
	Cancel()
}

// Timer is the external timer service contract (section 6). Every
// scheduled callback is expected to check a role's liveness before acting,
// since a callback that fires after its role has stopped must be a no-op.
type Timer interface {
	Schedule(d time.Duration, fn func()) TimerHandle
}

// Node is the external per-node collaborator the core roles run on: it
// owns dispatch (register/unregister), the send primitive, node identity,
// logging and a timer service. A Send to the node's own Address is
// delivered through the same single-threaded mailbox as any other inbound
// message — never invoked re-entrantly from inside the current handler.
type Node interface {
	Address() Address
	Send(to []Address, msg Message)
	Register(r Role)
	Unregister(r Role)
	Logger() kitlog.Logger
	Timer() Timer
}

// Quorum is the smallest majority of n peers: floor(n/2) + 1.
func Quorum(n int) int {
	return n/2 + 1
}
