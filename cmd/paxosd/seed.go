package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"paxoscore.dev/server/configuration"
	"paxoscore.dev/server/transport/memnet"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Start the initial cluster from a static topology and run a short demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		topo, err := configuration.Load(configPath)
		if err != nil {
			return err
		}

		net := memnet.New()
		for _, addr := range topo.Peers {
			startMember(addr, topo.Peers, net)
		}
		logger.Log("msg", "cluster started", "self", topo.Self, "peers", topo.Peers)

		demoInvokes(topo.Self, net)

		waitForSignal()
		return nil
	},
}

func waitForSignal() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, os.Interrupt)
	<-sigs
	logger.Log("msg", "shutting down")
}
