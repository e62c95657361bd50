// Package block defines the data exchanged by the save pipeline: the Unit
// contract implemented by editable blocks, the records produced while saving
// them, and the OutputDocument the pipeline returns.
package block
