// Command paxosd is a demo/harness binary for the paxoscore.dev/server
// core: it builds an in-process cluster over transport/memnet (the only
// transport this repository implements — see DESIGN.md on the dropped
// tcpcapnproto/websocketmsgpack teacher transports) and drives a few
// client requests through it, following the teacher's cmd/goshawkdb
// go-kit logging setup and sandeepkv93-network-programming's cobra
// subcommand layout.
package main

import (
	"fmt"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

var logger kitlog.Logger

func main() {
	logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
