// Package saver assembles the output document of an editor.
//
// A save cycle disables the change tracker, extracts every block
// concurrently (Save then Validate), joins the results in block order,
// enables the tracker, sanitizes the batch and folds it into a versioned
// OutputDocument. Blocks that save nothing or fail validation are left out;
// a failing Save, Validate or sanitizer call fails the whole cycle.
package saver
