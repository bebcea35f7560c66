package paxos

import kitlog "github.com/go-kit/kit/log"

// DebugLogFunc matches the teacher's own server.DebugLogFunc (formerly
// server/utils.go): a swappable hook, no-op by default, so call sites can
// log a logger and keyvals without every build paying for it.
type DebugLogFunc func(kitlog.Logger, ...interface{})

// DebugLog is a no-op by default. Tests or a debug build can reassign it
// to a function that passes the keyvals to the given logger's Log, to see
// per-message tracing from the roles below.
var DebugLog = DebugLogFunc(func(kitlog.Logger, ...interface{}) {})
