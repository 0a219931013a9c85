// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (keys, accounts, cluster replies) and contracts
// (interfaces) only; the concrete definitions live in the types and interfaces
// subpackages and are re-exported here under short names.
package domain
