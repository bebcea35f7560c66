// Package transport declares the external message-transport contract the
// core consumes (spec.md section 6). The transport itself — and any
// simulated lossiness — is explicitly out of the core's scope; this
// package exists only to name the contract a node.Node is built against.
package transport

import "paxoscore.dev/server/paxos"

// Transport delivers msg to the node at to. Delivery is not guaranteed:
// per the asynchronous, lossy network model, a Transport is free to drop,
// delay or reorder messages, and the protocol must tolerate all three.
type Transport interface {
	Send(to paxos.Address, msg paxos.Message)
}

// Inbox is the receiving side of a Transport: whatever a concrete
// transport hands inbound messages to, typically a node.Node.
type Inbox interface {
	Enqueue(from paxos.Address, msg paxos.Message)
}
