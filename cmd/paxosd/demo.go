package main

import (
	"paxoscore.dev/server/client"
	"paxoscore.dev/server/paxos"
	"paxoscore.dev/server/transport/memnet"
)

// demoClientAddr is the fixed address the demo driver's client registers
// under; it is never a cluster member's own address.
const demoClientAddr = paxos.Address("demo-client")

func demoClient(_ paxos.Address, net *memnet.Network) *client.Client {
	c := client.New(demoClientAddr, net.Endpoint(demoClientAddr))
	net.Register(demoClientAddr, c)
	return c
}
