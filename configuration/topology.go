// Package configuration holds the static peer-set Topology every role's
// quorum and rotation arithmetic is computed against. Per spec.md's
// Non-goals, there is no reconfiguration here — the teacher's own
// topologytransmogrifier package drove live membership migration across a
// running cluster, which this core explicitly does not support; a
// Topology is loaded once at startup and never changes underneath a
// running node.
package configuration

import (
	"encoding/json"
	"fmt"
	"os"

	"paxoscore.dev/server/paxos"
)

// Topology is the static initial peer set plus this node's own address
// within it.
type Topology struct {
	Self  paxos.Address   `json:"self"`
	Peers []paxos.Address `json:"peers"`
}

// Load reads a Topology from a JSON file of the form
// {"self": "...", "peers": ["...", ...]}.
func Load(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("configuration: reading %s: %w", path, err)
	}
	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("configuration: parsing %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that Self appears among Peers and Peers has no
// duplicates.
func (t *Topology) Validate() error {
	seen := make(map[paxos.Address]bool, len(t.Peers))
	foundSelf := false
	for _, p := range t.Peers {
		if seen[p] {
			return fmt.Errorf("configuration: duplicate peer %q", p)
		}
		seen[p] = true
		if p == t.Self {
			foundSelf = true
		}
	}
	if !foundSelf {
		return fmt.Errorf("configuration: self %q is not among peers %v", t.Self, t.Peers)
	}
	return nil
}

// Quorum is the smallest majority of this topology's peers.
func (t *Topology) Quorum() int {
	return paxos.Quorum(len(t.Peers))
}
