// Package app provides a small deterministic Application for demos and
// tests: a running sum over little-endian uint64 deltas, matching the
// scenarios spec.md section 8 walks through end to end.
package app

import "encoding/binary"

// Counter implements replica.Application. Execute is pure and
// side-effect free, as the core's commit path requires.
type Counter struct{}

// Execute adds the uint64 encoded in input to the uint64 encoded in
// state and returns the new running total as both state and output. A
// state or input that isn't exactly 8 bytes is treated as zero, so the
// very first commit (empty state) works without special-casing.
func (Counter) Execute(state []byte, input []byte) (newState []byte, output []byte) {
	var sum uint64
	if len(state) == 8 {
		sum = binary.LittleEndian.Uint64(state)
	}
	if len(input) == 8 {
		sum += binary.LittleEndian.Uint64(input)
	}
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, sum)
	return out, out
}

// EncodeDelta is a test/demo convenience for building Counter inputs.
func EncodeDelta(delta uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, delta)
	return b
}

// DecodeTotal is a test/demo convenience for reading Counter state/output.
func DecodeTotal(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}
