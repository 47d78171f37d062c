// Package models defines the core domain models for splitpad.
//
// # Models
//
//   - Expense: one shared cost, paid by a single participant and split
//     equally among the listed participants
//   - Sheet: the persisted snapshot of a participant list and its expenses
//
// Participants are identified by their display name. Names are trimmed on
// entry and compared exactly (case-sensitive); there is no separate ID.
//
// Balances and settlements are not models: the calculator package derives
// them from a Sheet on every read and they are never stored.
package models
