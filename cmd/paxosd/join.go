package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"paxoscore.dev/server/bootstrap"
	"paxoscore.dev/server/configuration"
	"paxoscore.dev/server/node"
	"paxoscore.dev/server/paxos"
	"paxoscore.dev/server/replica"
	"paxoscore.dev/server/stats"
	"paxoscore.dev/server/timer"
	"paxoscore.dev/server/transport/memnet"

	"github.com/prometheus/client_golang/prometheus"

	"paxoscore.dev/server/app"
)

var seedAddrsFlag string
var joinTimeout time.Duration

func init() {
	joinCmd.Flags().StringVar(&seedAddrsFlag, "seeds", "", "Comma-separated addresses of already-running peers to catch up from.")
	joinCmd.Flags().DurationVar(&joinTimeout, "timeout", 5*time.Second, "How long to wait for a Welcome before giving up.")
	rootCmd.AddCommand(joinCmd)
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Start an already-running peer set, then catch up a late-joining node via Join/Welcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := configuration.Load(configPath)
		if err != nil {
			return err
		}
		seeds := splitAddrs(seedAddrsFlag)

		net := memnet.New()
		var running []paxos.Address
		for _, addr := range topo.Peers {
			if addr == topo.Self {
				continue
			}
			startMember(addr, topo.Peers, net)
			running = append(running, addr)
		}
		logger.Log("msg", "running peers started", "peers", running)

		if len(running) > 0 {
			demoInvokes(running[0], net)
		}

		ctx := context.Background()
		welcome, err := bootstrap.Join(ctx, topo.Self, seeds, net, joinTimeout)
		if err != nil {
			return err
		}
		logger.Log("msg", "caught up", "nextCommitSlot", welcome.NextCommitSlot, "decisions", len(welcome.Decisions))

		n := node.New(topo.Self, logger, net.Endpoint(topo.Self), timer.New())
		reg := prometheus.NewRegistry()
		metrics := stats.NewCollector(reg, topo.Self)
		paxos.NewAcceptor(n, metrics)
		paxos.NewLeader(n, topo.Peers, metrics)
		r := replica.New(n, topo.Peers, app.Counter{}, metrics)
		r.Seed(*welcome)
		net.Register(topo.Self, n)

		logger.Log("msg", "joined", "self", topo.Self, "appliedState", len(r.AppliedState()))

		waitForSignal()
		return nil
	},
}

func splitAddrs(s string) []paxos.Address {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]paxos.Address, 0, len(parts))
	for _, p := range parts {
		out = append(out, paxos.Address(strings.TrimSpace(p)))
	}
	return out
}
