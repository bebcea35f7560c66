// Package memnet is a deterministic, in-process network simulator: the
// "network simulator for tests" spec.md section 1 names as an out-of-scope
// collaborator, implemented here just enough to exercise the core's
// end-to-end scenarios (spec.md section 8), including message loss,
// duplication and partitions. Delivery is synchronous, in send order: it
// does not reorder or delay messages.
package memnet

import (
	"math/rand"
	"sync"

	"paxoscore.dev/server/paxos"
	"paxoscore.dev/server/transport"
)

// Network is a shared in-memory switchboard: every node registers an
// Inbox under its address, and every Endpoint bound to that network can
// reach any registered address.
type Network struct {
	mu    sync.Mutex
	nodes map[paxos.Address]transport.Inbox
	rng   *rand.Rand

	// DropRate, in [0,1], is the probability a given Send is silently
	// dropped. Zero by default (no loss).
	DropRate float64
	// DuplicateRate, in [0,1], is the probability a delivered message is
	// also delivered a second time.
	DuplicateRate float64
	// Blocked holds pairs of addresses whose traffic in either direction
	// is dropped unconditionally, modelling a network partition.
	Blocked map[[2]paxos.Address]bool
}

// New returns an empty, lossless Network.
func New() *Network {
	return &Network{
		nodes:   make(map[paxos.Address]transport.Inbox),
		rng:     rand.New(rand.NewSource(1)),
		Blocked: make(map[[2]paxos.Address]bool),
	}
}

// Register binds addr's inbox into the network so other endpoints can
// reach it.
func (n *Network) Register(addr paxos.Address, inbox transport.Inbox) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nodes[addr] = inbox
}

// Partition drops all traffic between a and b in either direction until
// Heal is called.
func (n *Network) Partition(a, b paxos.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Blocked[[2]paxos.Address{a, b}] = true
	n.Blocked[[2]paxos.Address{b, a}] = true
}

// Heal removes a previously installed partition between a and b.
func (n *Network) Heal(a, b paxos.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.Blocked, [2]paxos.Address{a, b})
	delete(n.Blocked, [2]paxos.Address{b, a})
}

// Endpoint returns a transport.Transport that sends as from.
func (n *Network) Endpoint(from paxos.Address) *Endpoint {
	return &Endpoint{net: n, from: from}
}

func (n *Network) deliver(from, to paxos.Address, msg paxos.Message) {
	n.mu.Lock()
	if n.Blocked[[2]paxos.Address{from, to}] {
		n.mu.Unlock()
		return
	}
	drop := n.DropRate > 0 && n.rng.Float64() < n.DropRate
	dup := n.DuplicateRate > 0 && n.rng.Float64() < n.DuplicateRate
	inbox, found := n.nodes[to]
	n.mu.Unlock()

	if drop || !found {
		return
	}
	inbox.Enqueue(from, msg)
	if dup {
		inbox.Enqueue(from, msg)
	}
}

// Endpoint is a Network-bound transport.Transport sending as a fixed
// source address.
type Endpoint struct {
	net  *Network
	from paxos.Address
}

// Send implements transport.Transport.
func (e *Endpoint) Send(to paxos.Address, msg paxos.Message) {
	e.net.deliver(e.from, to, msg)
}
