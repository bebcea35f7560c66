package replica

import (
	"time"

	kitlog "github.com/go-kit/kit/log"

	"paxoscore.dev/server/paxos"
)

type sentMsg struct {
	to  []paxos.Address
	msg paxos.Message
}

// fakeNode is a synchronous paxos.Node test double: Send records instead
// of delivering, and Timer returns a no-op service, so Replica unit tests
// can drive Deliver directly without a real transport or executor.
type fakeNode struct {
	addr paxos.Address
	sent []sentMsg
}

func newFakeNode(addr paxos.Address) *fakeNode {
	return &fakeNode{addr: addr}
}

func (f *fakeNode) Address() paxos.Address { return f.addr }
func (f *fakeNode) Send(to []paxos.Address, msg paxos.Message) {
	f.sent = append(f.sent, sentMsg{to: to, msg: msg})
}
func (f *fakeNode) Register(paxos.Role)   {}
func (f *fakeNode) Unregister(paxos.Role) {}
func (f *fakeNode) Logger() kitlog.Logger { return kitlog.NewNopLogger() }
func (f *fakeNode) Timer() paxos.Timer    { return noopTimer{} }

type noopTimer struct{}

func (noopTimer) Schedule(d time.Duration, fn func()) paxos.TimerHandle { return noopHandle{} }

type noopHandle struct{}

func (noopHandle) Cancel() {}

// fakeApp is a deterministic Application test double: it appends each
// input to state and returns state as both the new state and the output,
// so tests can assert on the exact sequence of commits.
type fakeApp struct{}

func (fakeApp) Execute(state []byte, input []byte) ([]byte, []byte) {
	out := append(append([]byte(nil), state...), input...)
	return out, out
}
