package store

import "academy/progress"

// Progress is the global progress store, wired in main (Redis local source
// over the GORM remote) and swapped for a memory KV in tests.
var Progress *progress.Store

// Deadlines is the global deadline book over the same KV.
var Deadlines *DeadlineBook

// Init wires the global store instances over the given KV.
func Init(kv KV) {
	Progress = progress.NewStore(kv, GormRemote{})
	Deadlines = &DeadlineBook{KV: kv}
}
