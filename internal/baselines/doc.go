// Package baselines discovers the baseline configuration documents carried by
// a synchronized working copy and derives display metadata for each one.
package baselines
