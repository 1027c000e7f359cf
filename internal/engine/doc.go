// Package engine turns a weather record and an activity catalog into ranked
// suggestions.
//
// Every function in the package is pure: the catalog is read-only, time is
// passed in, and identical inputs give identical outputs. Callers may run
// the engine concurrently across days without coordination.
package engine
