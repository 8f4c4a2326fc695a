// Package tracker provides the types and operations of a personal
// multi-market investment book. It is designed to be local-first and
// auditable: the trade log is the single source of truth, and everything
// else is derived from it.
//
// The core functionalities include:
//   - Trade Ledger: an append-only but editable log of buys and sells
//     across market segments (China A-shares, Hong-Kong stocks, US stocks
//     and open-ended funds), persisted as human-readable JSONL.
//   - Reconciliation Engine: incremental derivation of the position table
//     (weighted average cost basis) and per-currency cash balances from the
//     log, with a full replay (Resync) guaranteed to reach the same state.
//   - Atomic Mutations: adding, editing or deleting a trade updates the log
//     and the derived state as one unit, or not at all.
//   - Live Valuation: pricing of current holdings through pluggable quote
//     providers, degrading to cost basis when a quote is unavailable.
//
// This package serves as the foundational logic for the `ivt` command-line
// tool.
package tracker
