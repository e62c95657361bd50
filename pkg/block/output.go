package block

import "encoding/json"

// OutputBlock is one entry of OutputDocument.Blocks. It is either a wrapped
// block ({type, data, tunes?}) or an unwrapped stub whose data is emitted as
// the block itself. Use WrapBlock or StubBlock to build one.
type OutputBlock struct {
	Type  string
	Data  BlockData
	Tunes Tunes
	stub  bool
}

// WrapBlock builds a {type, data} block. Empty tunes are dropped.
func WrapBlock(tool string, data BlockData, tunes Tunes) OutputBlock {
	b := OutputBlock{Type: tool, Data: data}
	if len(tunes) > 0 {
		b.Tunes = tunes
	}
	return b
}

// StubBlock emits data verbatim in place of a wrapped block.
func StubBlock(data BlockData) OutputBlock {
	return OutputBlock{Data: data, stub: true}
}

func (b OutputBlock) IsStub() bool {
	return b.stub
}

type wrappedBlock struct {
	Type  string    `json:"type"`
	Data  BlockData `json:"data"`
	Tunes Tunes     `json:"tunes,omitempty"`
}

func (b OutputBlock) MarshalJSON() ([]byte, error) {
	if b.stub {
		return json.Marshal(b.Data)
	}
	return json.Marshal(wrappedBlock{Type: b.Type, Data: b.Data, Tunes: b.Tunes})
}

// UnmarshalJSON reads a wrapped block. Objects without a "type" string, or
// with keys a wrapped block never carries, are kept whole as stub blocks.
func (b *OutputBlock) UnmarshalJSON(raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}

	if !isWrapped(fields) {
		var data BlockData
		if err := json.Unmarshal(raw, &data); err != nil {
			return err
		}
		*b = StubBlock(data)
		return nil
	}

	var w wrappedBlock
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	*b = WrapBlock(w.Type, w.Data, w.Tunes)
	return nil
}

func isWrapped(fields map[string]json.RawMessage) bool {
	var tool string
	if t, ok := fields["type"]; !ok || json.Unmarshal(t, &tool) != nil || tool == "" {
		return false
	}
	for k := range fields {
		switch k {
		case "type", "data", "tunes":
		default:
			return false
		}
	}
	return true
}

// OutputDocument is the artifact of one save cycle.
type OutputDocument struct {
	Time    int64         `json:"time"`
	Blocks  []OutputBlock `json:"blocks"`
	Version string        `json:"version"`
}
