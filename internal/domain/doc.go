// Package domain contains the core business entities of the application:
// vocabulary cards, per-card scheduling state, and the projections used by
// the review flow. Scheduling transitions live in the nested srs package.
package domain
