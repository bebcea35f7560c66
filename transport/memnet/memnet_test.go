package memnet

import (
	"testing"

	"paxoscore.dev/server/paxos"
)

type recordingInbox struct {
	received []paxos.Message
}

func (r *recordingInbox) Enqueue(from paxos.Address, msg paxos.Message) {
	r.received = append(r.received, msg)
}

func TestDeliversToRegisteredInbox(t *testing.T) {
	net := New()
	inbox := &recordingInbox{}
	net.Register("b", inbox)

	net.Endpoint("a").Send("b", paxos.Active{})

	if len(inbox.received) != 1 {
		t.Fatalf("expected exactly one delivered message, got %d", len(inbox.received))
	}
}

func TestSendToUnregisteredAddressIsDropped(t *testing.T) {
	net := New()
	// No Register call for "ghost" — Send must not panic and must not
	// deliver anywhere.
	net.Endpoint("a").Send("ghost", paxos.Active{})
}

func TestPartitionBlocksBothDirections(t *testing.T) {
	net := New()
	a := &recordingInbox{}
	b := &recordingInbox{}
	net.Register("a", a)
	net.Register("b", b)
	net.Partition("a", "b")

	net.Endpoint("a").Send("b", paxos.Active{})
	net.Endpoint("b").Send("a", paxos.Active{})

	if len(a.received) != 0 || len(b.received) != 0 {
		t.Fatalf("a partition must block traffic in both directions, a=%d b=%d", len(a.received), len(b.received))
	}
}

func TestHealRestoresTraffic(t *testing.T) {
	net := New()
	b := &recordingInbox{}
	net.Register("a", &recordingInbox{})
	net.Register("b", b)
	net.Partition("a", "b")
	net.Heal("a", "b")

	net.Endpoint("a").Send("b", paxos.Active{})
	if len(b.received) != 1 {
		t.Fatalf("expected traffic to flow again after Heal, got %d deliveries", len(b.received))
	}
}

func TestDropRateCanDropEveryMessage(t *testing.T) {
	net := New()
	b := &recordingInbox{}
	net.Register("a", &recordingInbox{})
	net.Register("b", b)
	net.DropRate = 1

	for i := 0; i < 20; i++ {
		net.Endpoint("a").Send("b", paxos.Active{})
	}
	if len(b.received) != 0 {
		t.Fatalf("DropRate=1 should drop every message, got %d delivered", len(b.received))
	}
}

func TestDuplicateRateCanDuplicateEveryMessage(t *testing.T) {
	net := New()
	b := &recordingInbox{}
	net.Register("a", &recordingInbox{})
	net.Register("b", b)
	net.DuplicateRate = 1

	net.Endpoint("a").Send("b", paxos.Active{})
	if len(b.received) != 2 {
		t.Fatalf("DuplicateRate=1 should deliver each message twice, got %d", len(b.received))
	}
}
