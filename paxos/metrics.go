package paxos

// Metrics is an optional observability hook a Leader, Acceptor or Replica
// reports to, mirroring the teacher's ProposerMetrics
// (paxos/proposermanager.go: Gauge + Observer fields updated as the
// proposer's state machine advances). A nil Metrics is always safe to
// pass — every role checks for nil before calling a method — so wiring
// metrics in is opt-in.
type Metrics interface {
	SetLeaderActive(active bool)
	SetBallotRound(round uint64)
	IncScoutsSpawned()
	IncCommandersSpawned()
	IncPreempted()
	SetAcceptorPromiseRound(round uint64)
	SetReplicaCommitSlot(slot uint64)
	IncCommits()
}
