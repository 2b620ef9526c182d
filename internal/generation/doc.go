// Package generation builds, executes, and summarizes runs of the guidance
// generator carried by the compliance repository, including the inventory of
// artifacts each run leaves under the build output directory.
package generation
