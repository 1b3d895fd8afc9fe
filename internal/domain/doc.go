// Package domain defines the core business entities of the application:
// users, decks, cards, per-card review schedules, immutable review events,
// and per-user study preferences. Entities are plain value structs with
// validation methods; all scheduling mutation goes through the srs package,
// which returns new values rather than modifying entities in place.
package domain
