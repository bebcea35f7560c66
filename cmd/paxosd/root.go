package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "paxosd",
	Short: "A Multi-Paxos replicated state machine demo node",
	Long: `paxosd builds a small in-memory Multi-Paxos cluster and drives a
handful of client requests through it, exercising the Acceptor, Replica,
Leader, Scout and Commander roles end to end.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a configuration.Topology JSON file (required).")
}
