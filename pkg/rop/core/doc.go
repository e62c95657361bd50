// Package core contains pipeline plumbing utilities: the indexed channel feed,
// worker configuration via context, and the locomotive that drives a stage.
// It does not define business logic; package lite builds the positional
// fan-out/fan-in join on top of it.
package core
