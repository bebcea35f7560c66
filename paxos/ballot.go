// Package paxos implements the Multi-Paxos core: ballots, proposals, the
// message set, and the Acceptor, Scout, Commander and Leader roles.
package paxos

import "fmt"

// Address identifies a node on the cluster. It is the unit every message
// is addressed to and from.
type Address string

// NoCaller is the zero Address, denoting a no-op proposal with no client
// waiting on a reply.
const NoCaller = Address("")

// Ballot is a proposer epoch: (round, leader). Ballots order lexicographically
// on Round then Leader. NullBallot sorts below every real ballot handed out
// by a leader, since round numbers here start at zero and Less treats equal
// rounds as a tie-break on Leader — a fresh node's starting ballot (0, self)
// is still a real ballot, not the null one.
type Ballot struct {
	Round  uint64
	Leader Address
}

// NullBallot is strictly less than any ballot a leader will ever construct.
var NullBallot = Ballot{Round: 0, Leader: NoCaller}

// Less reports whether b sorts strictly before o.
func (b Ballot) Less(o Ballot) bool {
	if b.Round != o.Round {
		return b.Round < o.Round
	}
	return b.Leader < o.Leader
}

// LessEq reports b == o || b.Less(o).
func (b Ballot) LessEq(o Ballot) bool {
	return b == o || b.Less(o)
}

func (b Ballot) String() string {
	return fmt.Sprintf("%d.%s", b.Round, b.Leader)
}

// Next returns the ballot this leader must use after being preempted by
// preemptedBy: one round ahead of whatever preempted it, under this
// leader's own identity. Ballots are never reused across adoption attempts.
func (b Ballot) Next(preemptedBy Ballot, self Address) Ballot {
	return Ballot{Round: preemptedBy.Round + 1, Leader: self}
}
