// Package srs implements the SM-2 spaced-repetition scheduler: the pure
// interval/ease-factor transition, due-card selection, and the upcoming
// horizon buckets. Nothing in this package performs I/O or holds mutable
// state; callers inject the clock and persist the results.
package srs
