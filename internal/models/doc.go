// Package models defines the core domain models for Tally.
//
// # Models
//
//   - User: registered user account
//   - Group: a set of users who share expenses
//   - Expense: a shared expense with per-participant splits
//   - Settlement: a direct payment between two users
//
// All monetary fields are float64 amounts in a single implicit currency.
// Comparisons against monetary values always use a small tolerance (see
// the ledger package) rather than exact equality.
//
// # Design Principles
//
// 1. **Immutable records**: expenses and settlements are append-only; balances
// are always recomputed from the full record set rather than maintained
// incrementally, which eliminates drift bugs.
// 2. **Avoid circular references**: relationships use ID strings instead of
// pointers.
// 3. **Server-assigned identity**: IDs and timestamps are assigned by the
// storage layer at insert time.
package models
