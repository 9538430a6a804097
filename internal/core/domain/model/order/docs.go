// Package order contains the ProductionOrder aggregate and its state machine.
//
// A production order moves through a fixed manufacturing pipeline of stages
// (Cutting, Sewing, Review, Packaging) while carrying an operational status
// (Pending, InProduction, Paused, ...). Every state change produces exactly
// one immutable HistoryEntry; the per-order sequence of entries is the audit
// source of truth, and the aggregate's current stage and status always equal
// the newest entry's values.
//
// The aggregate enforces the transition rules itself: stages advance one step
// at a time, backward moves need a documenting note, completion is only legal
// from Packaging, and a completed order never changes again. Ownership is
// enforced here too: operator- and workshop-class users may only act on
// orders assigned to them.
package order
