// Package bootstrap implements the late-joining node's half of the
// Join/Welcome catch-up protocol (spec.md section 4.6 and SPEC_FULL.md
// section 10): a one-shot helper a node runs before it starts serving, to
// pull the current applied state and decision log from a running peer.
package bootstrap

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"paxoscore.dev/server/backoff"
	"paxoscore.dev/server/paxos"
	"paxoscore.dev/server/transport/memnet"
)

// ErrTimeout is returned when no seed answers Join before the deadline.
var ErrTimeout = errors.New("bootstrap: no seed answered Join before the deadline")

// waiter is a one-shot transport.Inbox that captures the first Welcome it
// sees and discards everything else, in the idiom of dedis-tlc's
// model_test.go driving a node's mailbox by hand rather than through the
// full per-node dispatcher — a joining node has no roles registered yet,
// so there is nothing else for it to dispatch to.
type waiter struct {
	ch chan paxos.Welcome
}

func (w *waiter) Enqueue(_ paxos.Address, msg paxos.Message) {
	if welcome, ok := msg.(paxos.Welcome); ok {
		select {
		case w.ch <- welcome:
		default:
		}
	}
}

// Join registers self as a temporary inbox on net, sends Join to every
// seed, and waits up to timeout for the first Welcome, retransmitting on
// a jittered binary backoff (a backoff.Engine bounded by
// paxos.PrepareRetransmit and LeaderTimeout) to survive a dropped Join or
// Welcome without synchronizing retries across every joining node at
// once. The first retransmission goes out at once, since Engine.Next
// returns 0 on its first call; each later one waits a random delay below
// the current, doubling period. The caller
// must re-register its permanent Inbox (the node.Node it goes on to
// construct, primed via Replica.Seed with the returned Welcome) under
// self once Join returns — this temporary waiter is not a real
// dispatcher and is discarded.
func Join(ctx context.Context, self paxos.Address, seeds []paxos.Address, net *memnet.Network, timeout time.Duration) (*paxos.Welcome, error) {
	w := &waiter{ch: make(chan paxos.Welcome, 1)}
	net.Register(self, w)

	ep := net.Endpoint(self)
	send := func() {
		for _, seed := range seeds {
			ep.Send(seed, paxos.Join{})
		}
	}
	send()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	eng := backoff.New(rand.New(rand.NewSource(time.Now().UnixNano())), paxos.PrepareRetransmit, paxos.LeaderTimeout)
	timer := time.NewTimer(eng.Next())
	defer timer.Stop()

	for {
		select {
		case welcome := <-w.ch:
			return &welcome, nil
		case <-timer.C:
			send()
			timer.Reset(eng.Next())
		case <-ctx.Done():
			return nil, ErrTimeout
		}
	}
}
