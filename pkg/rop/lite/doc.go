// Package lite provides the positional fan-out/fan-in join used by the save
// pipeline: Gather feeds indexed inputs to a fixed number of locomotives,
// collects every outcome into a buffer indexed by input position and fails
// the whole join when any input fails.
package lite
