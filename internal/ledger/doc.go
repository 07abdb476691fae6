// Package ledger converts raw expense and settlement records into netted,
// signed balances. It is a pure computation layer: every query recomputes
// from an immutable snapshot of records handed in by the caller, holds no
// state across invocations, and never writes.
//
// Sign convention, everywhere: positive = the counterpart owes the subject.
// Every caller-facing "owed" vs "owe" bucket derives from this sign.
package ledger
