// Package snapshot turns a saved document back into units, so a previous
// output (or any JSON in the same shape) can be run through a save cycle.
// Blocks of tools the registry does not know are carried by the stub tool
// with their original JSON as data.
package snapshot

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/ib-77/blocksaver/pkg/block"
	"github.com/ib-77/blocksaver/pkg/tools"
)

// Entry is one block as it appears in a snapshot.
type Entry struct {
	ID    string          `json:"id,omitempty"`
	Type  string          `json:"type"`
	Data  block.BlockData `json:"data"`
	Tunes block.Tunes     `json:"tunes,omitempty"`
	raw   block.BlockData
}

// Document is the snapshot file layout.
type Document struct {
	Time    int64   `json:"time,omitempty"`
	Version string  `json:"version,omitempty"`
	Blocks  []Entry `json:"blocks"`
}

// Decode reads a snapshot document.
func Decode(r io.Reader) (Document, error) {
	var raw struct {
		Time    int64             `json:"time"`
		Version string            `json:"version"`
		Blocks  []json.RawMessage `json:"blocks"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Document{}, eris.Wrap(err, "decode snapshot")
	}

	doc := Document{Time: raw.Time, Version: raw.Version, Blocks: make([]Entry, 0, len(raw.Blocks))}
	for i, b := range raw.Blocks {
		var e Entry
		if err := json.Unmarshal(b, &e); err != nil {
			return Document{}, eris.Wrapf(err, "decode snapshot block %d", i)
		}
		if err := json.Unmarshal(b, &e.raw); err != nil {
			return Document{}, eris.Wrapf(err, "decode snapshot block %d", i)
		}
		if e.ID == "" {
			e.ID = strconv.Itoa(i)
		}
		doc.Blocks = append(doc.Blocks, e)
	}
	return doc, nil
}

// Unit is a snapshot entry bound to a tool registry.
type Unit struct {
	entry    Entry
	registry *tools.Registry
}

// Units binds every entry of doc to registry, in order.
func Units(doc Document, registry *tools.Registry) []block.Unit {
	units := make([]block.Unit, len(doc.Blocks))
	for i, e := range doc.Blocks {
		units[i] = &Unit{entry: e, registry: registry}
	}
	return units
}

func (u *Unit) ID() string { return u.entry.ID }

// Save returns the entry's record. An entry without data saves nothing.
func (u *Unit) Save(ctx context.Context) (*block.ExtractedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stub := u.registry.StubTool()
	switch {
	case u.entry.Type == stub:
		return &block.ExtractedRecord{Tool: stub, Data: u.entry.Data, Tunes: u.entry.Tunes}, nil
	case !u.registry.Has(u.entry.Type):
		return &block.ExtractedRecord{Tool: stub, Data: u.entry.raw}, nil
	case u.entry.Data == nil:
		return nil, nil
	}

	return &block.ExtractedRecord{Tool: u.entry.Type, Data: u.entry.Data, Tunes: u.entry.Tunes}, nil
}

func (u *Unit) Validate(ctx context.Context, data block.BlockData) (bool, error) {
	tool := u.entry.Type
	if !u.registry.Has(tool) {
		tool = u.registry.StubTool()
	}
	return u.registry.Validate(ctx, tool, data)
}
