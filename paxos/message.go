package paxos

// Message is the closed set of wire values the core exchanges. Following
// the REDESIGN FLAGS note (kept from the teacher's connectionMsg witness
// idiom in its network/connection.go), every variant is tagged with a Kind
// so a role can type-switch exhaustively instead of dispatching on method
// name. The sender's Address is never a field of the message itself — it is
// supplied out of band by the node's dispatcher at delivery time.
type Message interface {
	Kind() string
}

// Invoke is a client's request to order and execute input under client-id,
// replying to caller.
type Invoke struct {
	Caller   Address
	ClientID uint64
	Input    []byte
}

func (Invoke) Kind() string { return "Invoke" }

// Invoked is the reply to a committed Invoke.
type Invoked struct {
	ClientID uint64
	Output   []byte
}

func (Invoked) Kind() string { return "Invoked" }

// Propose asks a Leader to drive proposal to consensus at slot.
type Propose struct {
	Slot     Slot
	Proposal Proposal
}

func (Propose) Kind() string { return "Propose" }

// Prepare is phase 1a: a Scout soliciting promises for ballot.
type Prepare struct {
	Ballot Ballot
}

func (Prepare) Kind() string { return "Prepare" }

// Promise is phase 1b: an Acceptor's reply carrying its entire accepted-map.
type Promise struct {
	Ballot   Ballot
	Accepted map[Slot]SlotProposal
}

func (Promise) Kind() string { return "Promise" }

// Accept is phase 2a: a Commander driving (ballot, proposal) at slot.
type Accept struct {
	Slot     Slot
	Ballot   Ballot
	Proposal Proposal
}

func (Accept) Kind() string { return "Accept" }

// Accepted is phase 2b: an Acceptor's reply, carrying its current promise.
type Accepted struct {
	Slot   Slot
	Ballot Ballot
}

func (Accepted) Kind() string { return "Accepted" }

// Decision announces a chosen proposal at slot, broadcast to all Replicas.
type Decision struct {
	Slot     Slot
	Proposal Proposal
}

func (Decision) Kind() string { return "Decision" }

// Decided is a Commander's self-notification to its own Leader.
type Decided struct {
	Slot Slot
}

func (Decided) Kind() string { return "Decided" }

// Preempted is a Scout's or Commander's self-notification that a higher
// ballot invalidated it. Slot is nil for a Scout origin. PreemptedBy is a
// Ballot, not a node — logs referencing PreemptedBy.Leader reflect that
// ballots carry a leader identity (see DESIGN NOTES, open question).
type Preempted struct {
	Slot        *Slot
	PreemptedBy Ballot
}

func (Preempted) Kind() string { return "Preempted" }

// Adopted is a Scout's self-notification (and onward to the local Replica)
// that ballot was adopted by a quorum, carrying the reduced slot->proposal
// map.
type Adopted struct {
	Ballot   Ballot
	Accepted map[Slot]Proposal
}

func (Adopted) Kind() string { return "Adopted" }

// Accepting is the local Acceptor's notice to the local Replica that a
// Prepare bumped the promise, naming the probable new leader.
type Accepting struct {
	Leader Address
}

func (Accepting) Kind() string { return "Accepting" }

// Active is a Leader's heartbeat to peer Replicas.
type Active struct{}

func (Active) Kind() string { return "Active" }

// Join is a late-joining node's request to catch up from a known peer.
type Join struct{}

func (Join) Kind() string { return "Join" }

// Welcome answers Join with enough state to catch a joiner up.
type Welcome struct {
	State          []byte
	NextCommitSlot Slot
	Decisions      map[Slot]Proposal
}

func (Welcome) Kind() string { return "Welcome" }
