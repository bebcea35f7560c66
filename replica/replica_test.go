package replica

import (
	"testing"

	"paxoscore.dev/server/paxos"
)

func TestHandleInvokeSendsProposeToLatestLeader(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1", "r2", "r3"}, fakeApp{}, nil)

	r.Deliver("c1", paxos.Invoke{Caller: "c1", ClientID: 1, Input: []byte("a")})

	if len(n.sent) != 1 {
		t.Fatalf("expected exactly one Propose to be sent, got %d", len(n.sent))
	}
	propose, ok := n.sent[0].msg.(paxos.Propose)
	if !ok {
		t.Fatalf("expected a Propose, got %T", n.sent[0].msg)
	}
	if n.sent[0].to[0] != "r1" {
		t.Fatalf("a fresh replica with no known leader should propose to itself, sent to %v", n.sent[0].to)
	}
	if !propose.Proposal.Equal(paxos.Proposal{Caller: "c1", ClientID: 1, Input: []byte("a")}) {
		t.Fatalf("Propose.Proposal = %+v, unexpected", propose.Proposal)
	}
}

func TestDuplicateInvokeReusesSameSlot(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1"}, fakeApp{}, nil)

	inv := paxos.Invoke{Caller: "c1", ClientID: 1, Input: []byte("a")}
	r.Deliver("c1", inv)
	r.Deliver("c1", inv)

	var slots []paxos.Slot
	for _, s := range n.sent {
		if p, ok := s.msg.(paxos.Propose); ok {
			slots = append(slots, p.Slot)
		}
	}
	if len(slots) != 2 || slots[0] != slots[1] {
		t.Fatalf("a retried identical Invoke must re-propose at the same slot, got slots %v", slots)
	}
}

func TestDecisionsCommitInOrder(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1"}, fakeApp{}, nil)

	p0 := paxos.Proposal{Caller: "c1", ClientID: 1, Input: []byte("A")}
	p1 := paxos.Proposal{Caller: "c1", ClientID: 2, Input: []byte("B")}

	// Decision for slot 1 arrives before slot 0: must not commit until
	// slot 0 is also decided (R3 in-order application, spec.md section 3).
	r.Deliver("leader", paxos.Decision{Slot: 1, Proposal: p1})
	if len(r.committed) != 0 {
		t.Fatalf("must not commit slot 1 before slot 0 is decided, committed=%v", r.committed)
	}

	r.Deliver("leader", paxos.Decision{Slot: 0, Proposal: p0})
	if len(r.committed) != 2 {
		t.Fatalf("expected both slots to drain once slot 0 arrives, committed=%v", r.committed)
	}
	if !r.committed[0].Equal(p0) || !r.committed[1].Equal(p1) {
		t.Fatalf("committed out of order: %+v", r.committed)
	}
	if string(r.appliedState) != "AB" {
		t.Fatalf("appliedState = %q, want %q", r.appliedState, "AB")
	}
}

func TestDuplicateDecisionIsNotCommittedTwice(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1"}, fakeApp{}, nil)

	p := paxos.Proposal{Caller: "c1", ClientID: 1, Input: []byte("A")}
	r.Deliver("leader", paxos.Decision{Slot: 0, Proposal: p})

	// A different slot decided with a proposal equal to one already
	// committed must be skipped, not re-applied (R3).
	r.Deliver("leader", paxos.Decision{Slot: 1, Proposal: p})

	if len(r.committed) != 1 {
		t.Fatalf("expected exactly one commit for a duplicate proposal across slots, got %d", len(r.committed))
	}
	if string(r.appliedState) != "A" {
		t.Fatalf("appliedState = %q, want %q (duplicate must not be applied twice)", r.appliedState, "A")
	}
}

func TestLostSlotTriggersRepropose(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1"}, fakeApp{}, nil)

	mine := paxos.Proposal{Caller: "c1", ClientID: 1, Input: []byte("mine")}
	r.Deliver("c1", paxos.Invoke{Caller: "c1", ClientID: 1, Input: []byte("mine")})
	n.sent = nil

	// Another proposal wins slot 0 instead of ours.
	other := paxos.Proposal{Caller: "c2", ClientID: 2, Input: []byte("other")}
	r.Deliver("leader", paxos.Decision{Slot: 0, Proposal: other})

	var reproposed bool
	for _, s := range n.sent {
		if p, ok := s.msg.(paxos.Propose); ok && p.Proposal.Equal(mine) {
			reproposed = true
		}
	}
	if !reproposed {
		t.Fatalf("losing a slot to a competing proposal must trigger a re-propose at a fresh slot")
	}
}

func TestAcceptingUpdatesLatestLeader(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1", "r2"}, fakeApp{}, nil)

	r.Deliver("r1", paxos.Accepting{Leader: "r2"})
	if r.latestLeader != "r2" {
		t.Fatalf("latestLeader = %v, want r2", r.latestLeader)
	}
}

func TestJoinRepliesWithWelcomeForKnownPeer(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1", "r2"}, fakeApp{}, nil)

	r.Deliver("leader", paxos.Decision{Slot: 0, Proposal: paxos.Proposal{Caller: "c1", ClientID: 1, Input: []byte("A")}})
	r.Deliver("r2", paxos.Join{})

	if len(n.sent) == 0 {
		t.Fatalf("expected a Welcome reply to a known peer's Join")
	}
	last := n.sent[len(n.sent)-1]
	welcome, ok := last.msg.(paxos.Welcome)
	if !ok {
		t.Fatalf("expected the reply to r2's Join to be a Welcome, got %T", last.msg)
	}
	if welcome.NextCommitSlot != 1 {
		t.Fatalf("Welcome.NextCommitSlot = %d, want 1", welcome.NextCommitSlot)
	}
	if len(welcome.Decisions) != 1 {
		t.Fatalf("Welcome.Decisions has %d entries, want 1", len(welcome.Decisions))
	}
}

func TestJoinIgnoredForUnknownSender(t *testing.T) {
	n := newFakeNode("r1")
	r := New(n, []paxos.Address{"r1", "r2"}, fakeApp{}, nil)

	r.Deliver("stranger", paxos.Join{})
	if len(n.sent) != 0 {
		t.Fatalf("a Join from a non-peer address must not be answered")
	}
}

func TestSeedPrimesStateAndSlots(t *testing.T) {
	n := newFakeNode("r2")
	r := New(n, []paxos.Address{"r1", "r2"}, fakeApp{}, nil)

	r.Seed(paxos.Welcome{
		State:          []byte("AB"),
		NextCommitSlot: 2,
		Decisions: map[paxos.Slot]paxos.Proposal{
			0: {Caller: "c1", ClientID: 1, Input: []byte("A")},
			1: {Caller: "c1", ClientID: 2, Input: []byte("B")},
		},
	})

	if string(r.AppliedState()) != "AB" {
		t.Fatalf("AppliedState() = %q, want %q", r.AppliedState(), "AB")
	}
	if r.NextCommitSlot() != 2 {
		t.Fatalf("NextCommitSlot() = %d, want 2", r.NextCommitSlot())
	}
	if r.nextProposeSlot != 2 {
		t.Fatalf("nextProposeSlot = %d, want 2 (must not reuse an already-decided slot)", r.nextProposeSlot)
	}
}
