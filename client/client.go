// Package client is a thin client-side helper over Invoke/Invoked: send
// input, retry on the same ClientID until an Invoked reply arrives or the
// caller gives up. Retrying under one ClientID relies on the Replica's own
// proposal-equality dedup (spec.md section 4.6, R3) to make a retried
// Invoke safe to send more than once.
package client

import (
	"context"
	"sync"
	"time"

	"paxoscore.dev/server/paxos"
	"paxoscore.dev/server/transport"
)

// Client is both a transport.Inbox (it must be registered under its own
// address so Invoked replies reach it) and the caller-facing Invoke API.
type Client struct {
	self paxos.Address
	ep   transport.Transport

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan []byte
}

// New returns a Client that sends as self over ep. The caller is
// responsible for registering the returned Client as the Inbox for self
// on whatever transport ep sends through.
func New(self paxos.Address, ep transport.Transport) *Client {
	return &Client{
		self:    self,
		ep:      ep,
		pending: make(map[uint64]chan []byte),
	}
}

// Enqueue implements transport.Inbox, routing each Invoked reply to the
// Invoke call awaiting it and dropping anything else (a Client never
// receives non-Invoked traffic in a well-formed deployment, but message
// kinds it doesn't recognise are ignored rather than treated as an error).
func (c *Client) Enqueue(from paxos.Address, msg paxos.Message) {
	invoked, ok := msg.(paxos.Invoked)
	if !ok {
		return
	}
	c.mu.Lock()
	ch, found := c.pending[invoked.ClientID]
	if found {
		delete(c.pending, invoked.ClientID)
	}
	c.mu.Unlock()
	if found {
		select {
		case ch <- invoked.Output:
		default:
		}
	}
}

// Invoke sends input to target, a Replica's node address (or the address
// of any node, per spec.md's fallback of proposing to one's own Replica
// first), and blocks until its Invoked reply arrives, retransmitting
// every retransmit interval, or until ctx is cancelled.
func (c *Client) Invoke(ctx context.Context, target paxos.Address, input []byte, retransmit time.Duration) ([]byte, error) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	ch := make(chan []byte, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	send := func() {
		c.ep.Send(target, paxos.Invoke{Caller: c.self, ClientID: id, Input: input})
	}
	send()

	ticker := time.NewTicker(retransmit)
	defer ticker.Stop()

	for {
		select {
		case output := <-ch:
			return output, nil
		case <-ticker.C:
			send()
		case <-ctx.Done():
			c.mu.Lock()
			delete(c.pending, id)
			c.mu.Unlock()
			return nil, ctx.Err()
		}
	}
}
