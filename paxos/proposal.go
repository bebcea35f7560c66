package paxos

import "bytes"

// Slot is a position in the replicated log.
type Slot uint64

// Proposal is the immutable (caller, client-id, input) triple a Replica
// originates or a Commander drives to a decision. Caller is NoCaller for
// a no-op.
type Proposal struct {
	Caller   Address
	ClientID uint64
	Input    []byte
}

// Equal compares all three fields structurally.
func (p Proposal) Equal(o Proposal) bool {
	return p.Caller == o.Caller && p.ClientID == o.ClientID && bytes.Equal(p.Input, o.Input)
}

// IsNoop reports whether the proposal has no caller awaiting a reply.
func (p Proposal) IsNoop() bool {
	return p.Caller == NoCaller
}

// SlotProposal pairs an accepted ballot with the proposal stored under it,
// the value type of an Acceptor's accepted-map and a Scout's merged map.
type SlotProposal struct {
	Ballot   Ballot
	Proposal Proposal
}
