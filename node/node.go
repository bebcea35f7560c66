// Package node implements the per-node message dispatcher external
// collaborator (spec.md section 6): the single point every Acceptor,
// Replica, Leader, Scout and Commander on a node is registered with, and
// through which they all send — including to themselves.
package node

import (
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"

	"paxoscore.dev/server/dispatcher"
	"paxoscore.dev/server/paxos"
	"paxoscore.dev/server/timer"
	"paxoscore.dev/server/transport"
)

// defaultMailboxCapacity bounds how many undelivered thunks (inbound
// messages or timer fires) a node will buffer before Enqueue blocks its
// caller. Generous relative to the cluster sizes this core targets.
const defaultMailboxCapacity = 4096

// Node is the concrete paxos.Node and transport.Inbox: it owns the
// registered-role set and the single executor goroutine every inbound
// message and timer fire is funneled through, giving the whole node the
// run-to-completion discipline spec.md section 5 requires.
type Node struct {
	address   paxos.Address
	logger    kitlog.Logger
	transport transport.Transport
	timerSvc  paxos.Timer
	exe       *dispatcher.Executor

	mu    sync.Mutex
	roles []paxos.Role
}

// New constructs a Node at address, sending through t and scheduling
// timers through ts (use timer.New() for a real wall-clock service, or
// timer.NewFake() driven by hand in tests).
func New(address paxos.Address, logger kitlog.Logger, t transport.Transport, ts paxos.Timer) *Node {
	if ts == nil {
		ts = timer.New()
	}
	n := &Node{
		address:   address,
		logger:    kitlog.With(logger, "node", address),
		transport: t,
		exe:       dispatcher.New(defaultMailboxCapacity),
	}
	n.timerSvc = &serializedTimer{underlying: ts, exe: n.exe}
	return n
}

// serializedTimer wraps a raw paxos.Timer so that callbacks run on the
// node's executor goroutine rather than on whatever goroutine the
// underlying timer service fires them on (time.AfterFunc uses its own).
// This is what gives timer fires the same run-to-completion, no-concurrent-
// mutation discipline as inbound message dispatch (spec.md section 5).
type serializedTimer struct {
	underlying paxos.Timer
	exe        *dispatcher.Executor
}

func (s *serializedTimer) Schedule(d time.Duration, fn func()) paxos.TimerHandle {
	return s.underlying.Schedule(d, func() {
		s.exe.Enqueue(fn)
	})
}

// Address implements paxos.Node.
func (n *Node) Address() paxos.Address { return n.address }

// Logger implements paxos.Node.
func (n *Node) Logger() kitlog.Logger { return n.logger }

// Timer implements paxos.Node.
func (n *Node) Timer() paxos.Timer { return n.timerSvc }

// Register implements paxos.Node.
func (n *Node) Register(r paxos.Role) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.roles = append(n.roles, r)
}

// Unregister implements paxos.Node.
func (n *Node) Unregister(r paxos.Role) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, role := range n.roles {
		if role == r {
			n.roles = append(n.roles[:i], n.roles[i+1:]...)
			return
		}
	}
}

// Send implements paxos.Node. Each destination — including this node's own
// address — is handed to the transport individually; a send to self is
// not special-cased, it is simply routed back through the same transport
// and re-enters via Enqueue like any other inbound message.
func (n *Node) Send(to []paxos.Address, msg paxos.Message) {
	for _, dest := range to {
		n.transport.Send(dest, msg)
	}
}

// Enqueue implements transport.Inbox: it schedules delivery to every
// registered role on this node's executor, preserving the node's total
// per-message dispatch order and never invoking a role re-entrantly.
func (n *Node) Enqueue(from paxos.Address, msg paxos.Message) {
	n.exe.Enqueue(func() {
		n.mu.Lock()
		roles := make([]paxos.Role, len(n.roles))
		copy(roles, n.roles)
		n.mu.Unlock()
		for _, r := range roles {
			r.Deliver(from, msg)
		}
	})
}

// Stop shuts down the node's executor goroutine.
func (n *Node) Stop() {
	n.exe.Stop()
}
