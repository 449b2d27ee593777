// Package mongo stores accounts as documents of one MongoDB collection.
//
// Each document carries a position field that preserves insertion order and
// a random UUID as its _id. Save removes every document and inserts the new
// set.
package mongo
