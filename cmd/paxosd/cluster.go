package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"paxoscore.dev/server/app"
	"paxoscore.dev/server/node"
	"paxoscore.dev/server/paxos"
	"paxoscore.dev/server/replica"
	"paxoscore.dev/server/stats"
	"paxoscore.dev/server/timer"
	"paxoscore.dev/server/transport/memnet"
)

// clusterMember bundles together everything standing up one node's roles
// needs, mirroring the teacher's habit in cmd/goshawkdb/main.go of wiring
// disk, router, connection manager and stats publisher against one
// rmId per process — here there is exactly one per simulated node.
type clusterMember struct {
	node    *node.Node
	replica *replica.Replica
}

// startMember constructs and registers a full role set (Acceptor, Leader,
// Replica) for addr on net, reporting to its own Prometheus registry so
// multiple simulated nodes in one process don't collide on metric names.
func startMember(addr paxos.Address, peers []paxos.Address, net *memnet.Network) *clusterMember {
	n := node.New(addr, logger, net.Endpoint(addr), timer.New())
	net.Register(addr, n)

	reg := prometheus.NewRegistry()
	metrics := stats.NewCollector(reg, addr)

	paxos.NewAcceptor(n, metrics)
	paxos.NewLeader(n, peers, metrics)
	r := replica.New(n, peers, app.Counter{}, metrics)

	return &clusterMember{node: n, replica: r}
}

// demoInvokes drives a short, fixed sequence of client requests against
// target and logs the committed running total after each — the same
// scenario spec.md section 8 walks through by hand (sequential proposals
// from a single client).
func demoInvokes(target paxos.Address, net *memnet.Network) {
	c := demoClient(target, net)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, delta := range []uint64{1, 2, 3, 4, 5} {
		output, err := c.Invoke(ctx, target, app.EncodeDelta(delta), 200*time.Millisecond)
		if err != nil {
			logger.Log("msg", "demo invoke failed", "err", err)
			return
		}
		logger.Log("msg", "demo invoke committed", "delta", delta, "total", app.DecodeTotal(output))
	}
}
