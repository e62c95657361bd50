// Package tools keeps the set of known block tools with their validators and
// names the reserved stub tool.
package tools

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/ib-77/blocksaver/pkg/block"
)

// DefaultStubTool is the tool that stands in for blocks of unknown tools.
const DefaultStubTool = "stub"

// Validator checks a block's data for one tool.
type Validator func(ctx context.Context, data block.BlockData) (bool, error)

type Registry struct {
	mu         sync.RWMutex
	stub       string
	validators map[string]Validator
}

// NewRegistry returns an empty registry. An empty stub name selects
// DefaultStubTool.
func NewRegistry(stubTool string) *Registry {
	if stubTool == "" {
		stubTool = DefaultStubTool
	}
	return &Registry{stub: stubTool, validators: map[string]Validator{}}
}

// StubTool is the reserved tool identity whose data is emitted unwrapped.
func (r *Registry) StubTool() string {
	return r.stub
}

// Register adds or replaces the validator for name. A nil validator accepts
// any data.
func (r *Registry) Register(name string, v Validator) error {
	if strings.TrimSpace(name) == "" {
		return eris.New("tool name is required")
	}
	if name == r.stub {
		return eris.Errorf("tool %q is reserved", name)
	}
	if v == nil {
		v = AcceptAll
	}

	r.mu.Lock()
	r.validators[name] = v
	r.mu.Unlock()
	return nil
}

func (r *Registry) Has(name string) bool {
	if name == r.stub {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.validators[name]
	return ok
}

// Names lists registered tools, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.validators))
	for n := range r.validators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate runs the tool's validator. Stub data is always valid; unknown
// tools are an error.
func (r *Registry) Validate(ctx context.Context, tool string, data block.BlockData) (bool, error) {
	if tool == r.stub {
		return true, nil
	}

	r.mu.RLock()
	v, ok := r.validators[tool]
	r.mu.RUnlock()
	if !ok {
		return false, eris.Errorf("unknown tool %q", tool)
	}
	return v(ctx, data)
}

func AcceptAll(context.Context, block.BlockData) (bool, error) {
	return true, nil
}

// RequireFields accepts data that has every field set to a non-empty value.
func RequireFields(fields ...string) Validator {
	return func(_ context.Context, data block.BlockData) (bool, error) {
		for _, f := range fields {
			v, ok := data[f]
			if !ok || v == nil {
				return false, nil
			}
			if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
				return false, nil
			}
		}
		return true, nil
	}
}
