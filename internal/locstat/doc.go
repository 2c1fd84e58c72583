// Package locstat provides parallel line counting over directory trees.
//
// It discovers files using fastwalk, classifies each file's lines as
// empty or non-empty, and merges the per-file statistics through an
// associative reduction, optionally partitioned by file extension.
package locstat
