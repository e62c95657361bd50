// Package solo contains single-value, synchronous ROP primitives that operate
// on Result[T]. The save pipeline composes them to drive one block through
// save and validation without branching on errors at every step.
//
// Highlights:
// - Succeed: put a value on the success track
// - Switch: move from Result[In] to Result[Out] via a result-returning step
// - Map: transform a successful value
// - Try: call a function (Out, error) and convert error to failure or cancel
// - Unpack: leave the railway as (value, error)
package solo
