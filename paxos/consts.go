package paxos

import "time"

// Tunable timings. PREPARE_RETRANSMIT and ACCEPT_RETRANSMIT should sit well
// below LEADER_TIMEOUT so a lost message is recovered long before a
// healthy leader would be suspected dead.
const (
	PrepareRetransmit = 1 * time.Second
	AcceptRetransmit  = 1 * time.Second
	LeaderTimeout     = 10 * time.Second
)
