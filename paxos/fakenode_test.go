package paxos

import (
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// sentMsg records one call to fakeNode.Send, for tests that need to
// inspect what a role broadcast without a real transport.
type sentMsg struct {
	to  []Address
	msg Message
}

// fakeNode is a synchronous, single-goroutine test double for Node: it
// never actually schedules timers (Schedule is a no-op returning a handle
// whose Cancel does nothing) and records every Send instead of
// delivering it, so role unit tests can drive Deliver directly and assert
// on outbound messages without a real transport or executor.
type fakeNode struct {
	addr     Address
	sent     []sentMsg
	roles    []Role
}

func newFakeNode(addr Address) *fakeNode {
	return &fakeNode{addr: addr}
}

func (f *fakeNode) Address() Address { return f.addr }

func (f *fakeNode) Send(to []Address, msg Message) {
	f.sent = append(f.sent, sentMsg{to: to, msg: msg})
}

func (f *fakeNode) Register(r Role)   { f.roles = append(f.roles, r) }
func (f *fakeNode) Unregister(r Role) {
	for i, role := range f.roles {
		if role == r {
			f.roles = append(f.roles[:i], f.roles[i+1:]...)
			return
		}
	}
}

func (f *fakeNode) Logger() kitlog.Logger { return kitlog.NewNopLogger() }
func (f *fakeNode) Timer() Timer          { return noopTimer{} }

// deliverAll dispatches msg from "from" to every role registered on f, the
// way node.Node's real Enqueue loop does.
func (f *fakeNode) deliverAll(from Address, msg Message) {
	for _, r := range f.roles {
		r.Deliver(from, msg)
	}
}

type noopTimer struct{}

func (noopTimer) Schedule(d time.Duration, fn func()) TimerHandle { return noopHandle{} }

type noopHandle struct{}

func (noopHandle) Cancel() {}
