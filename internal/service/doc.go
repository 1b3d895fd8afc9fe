// Package service contains the application services for user, deck, and
// card management. Services own the transaction boundaries and ownership
// checks; domain rules live in internal/domain and persistence in
// internal/store.
package service
