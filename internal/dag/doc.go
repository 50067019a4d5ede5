// Package dag is a small directed acyclic graph of string IDs. Stacks use it
// to record which construct references which, so that dangling references
// and reference cycles are caught before any template is written.
package dag
