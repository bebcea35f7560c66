package paxos

import "testing"

func TestProposalEqual(t *testing.T) {
	a := Proposal{Caller: "c1", ClientID: 1, Input: []byte("x")}
	b := Proposal{Caller: "c1", ClientID: 1, Input: []byte("x")}
	c := Proposal{Caller: "c1", ClientID: 2, Input: []byte("x")}

	if !a.Equal(b) {
		t.Errorf("%v and %v should be equal", a, b)
	}
	if a.Equal(c) {
		t.Errorf("%v and %v should not be equal (different ClientID)", a, c)
	}
}

func TestProposalIsNoop(t *testing.T) {
	noop := Proposal{Caller: NoCaller, ClientID: 0, Input: nil}
	real := Proposal{Caller: "c1", ClientID: 1, Input: []byte("x")}

	if !noop.IsNoop() {
		t.Errorf("proposal with NoCaller should be a no-op")
	}
	if real.IsNoop() {
		t.Errorf("proposal with a real caller should not be a no-op")
	}
}
