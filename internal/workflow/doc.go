// Package workflow coordinates baseline generation end to end: a Session
// holds the authoritative view of the working copy and serializes
// synchronization, baseline discovery, and generator runs against it.
package workflow
