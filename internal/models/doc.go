// Package models defines the entity schemas for Divvy.
//
// # Entities
//
//   - Appuser: a registered user, identified by email
//   - Group: a set of people who share expenses
//   - Expense: a purchase paid by one group member
//   - SplitItem: one user's declared portion of an expense
//
// Each entity maps to one document-store collection named after the lowercase
// type name (Appuser -> "appuser", Group -> "group", Expense -> "expense").
// JSON tags are the wire names; documents are persisted with exactly these
// fields plus a store-generated id.
//
// # Validation
//
// Field constraints are declared with validate tags and enforced through
// Validate, which reports violations as a *ValidationError keyed by the JSON
// field path. Construction is all-or-nothing: callers validate before
// persisting, and an entity that fails validation is never stored.
//
// # Design Principles
//
//  1. Emails are identity: users are referenced by email everywhere
//     (group members, expense payer, split owner), never by store id.
//  2. Cross-entity integrity (does group_id exist, is paid_by a member)
//     is a service concern, not a schema concern.
//  3. Split semantics live in the split package; models only constrain the
//     shape of a declaration.
package models
