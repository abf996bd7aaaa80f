// Package domain defines the entities of the KanuControl club administration store.
//
// The package models the relational data of a canoe-sports association: persons
// (club members), clubs (Vereine), roles (Funktionen), memberships (Mitglieder) and
// the event side of the schema (Veranstaltungen with their Finanzen, Teilnahmen,
// Reisekosten and Mitfahrer), plus the lookup tables Land and KjpPosition.
//
// # Identity
//
// Every entity except Land and Finanzen carries a surrogate int64 ID. An ID of 0
// means the entity has not been inserted yet; the store assigns the ID on the first
// successful insert and never changes it afterwards. Land is keyed by its country
// code, Finanzen by the ID of its Veranstaltung.
//
// # Derived fields
//
// Person.NameGesamt, Person.Status and Person.StatusDatum are computed on every save
// (see Person.Derive). Finanzen totals are computed from the category fields.
//
// # Validation
//
// Validation runs before anything touches the store. Required text fields are
// tagged `validate:"required"`, required foreign keys `validate:"reference"`.
// Failures are reported as *ValidationError, matching ErrMissingRequiredField or
// ErrMissingReference with errors.Is.
//
// # Design Principles
//
// - No database or external dependencies besides the validator
// - Column names live in `db` struct tags and are used in validation messages
package domain
