// ABOUTME: Main heapscope package providing version information and package documentation
// ABOUTME: This is the root package for the heap metadata dump tool

// Package heapscope provides point-in-time structured dumps of a tracked
// live-object set. A dump records every tracked object's identity, type,
// size, attribute values, and outgoing references, plus an inventory of
// loaded code artifacts with their source locations. The graph package
// analyzes dump files with paths-to-roots, dominator tree, and retained
// size calculation.
package heapscope

// Version is the semantic version of the heapscope tool
const Version = "0.1.0-dev"
