// Package fund keeps the books of a small community fund: monthly
// contributions collected from a group of friends and the distributions paid
// out of them, in PKR.
//
// The package is organized around three pieces:
//   - Store: the authoritative, mutable set of period records. It applies
//     create, update and delete, and assigns record identifiers.
//   - Reconcile: a stateless engine that orders records by period, derives the
//     amount given from itemized distributions, folds remaining and cumulative
//     balances and aggregates the fund summary.
//   - Fund: the controller tying a Store to a Sink (persistence of the
//     reconciled records as a single blob) and a SeedProvider (initial data),
//     with role gated mutations.
//
// Amounts are exact decimals, never binary floats, so that sums over dozens
// of small distributions stay exact.
//
// This package serves as the foundational logic for the `cf` command-line
// tool and the dashboard API of the server package.
package fund
