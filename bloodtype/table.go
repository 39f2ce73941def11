// Package bloodtype provides category-keyed compatibility tables for
// donor/receiver matching, with the ABO/Rh red-cell table built in.
//
// A Table resolves a category label to a dense position once and answers
// Compatible in O(1). Unknown categories are errors, never "incompatible".
package bloodtype

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatch/index"
)

// Sentinel errors for table construction and lookups.
var (
	// ErrUnknownType indicates a category the table does not define.
	ErrUnknownType = errors.New("bloodtype: unknown type")

	// ErrUnknownParticipant indicates a participant without a category.
	ErrUnknownParticipant = errors.New("bloodtype: participant has no type")

	// ErrInvalidTable indicates a malformed table definition.
	ErrInvalidTable = errors.New("bloodtype: invalid table")
)

//go:embed abo_rh.yaml
var aboRh []byte

// Person is a participant labelled with a category.
type Person struct {
	ID        string `yaml:"id"`
	BloodType string `yaml:"blood_type"`
}

// Table is an immutable compatibility matrix over a small category set.
type Table struct {
	types *index.Index
	ok    [][]bool // ok[donor][receiver]
}

// definition is the YAML shape of a table.
type definition struct {
	Types   []string            `yaml:"types"`
	Donates map[string][]string `yaml:"donates"`
}

// Default returns the standard ABO/Rh red-cell table over
// O-, O+, A-, A+, B-, B+, AB-, AB+.
func Default() *Table {
	t, err := Load(bytes.NewReader(aboRh))
	if err != nil {
		// the embedded table is fixed at build time
		panic(err)
	}

	return t
}

// Load parses a YAML table:
//
//	types: [X, Y]
//	donates:
//	  X: [X, Y]
//	  Y: [Y]
//
// Types missing from donates donate to nobody.
func Load(r io.Reader) (*Table, error) {
	var def definition
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidTable, err)
	}

	return New(def.Types, def.Donates)
}

// LoadFile reads a YAML table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bloodtype: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("bloodtype: %s: %w", path, err)
	}

	return t, nil
}

// New builds a table from a category list and a donor → receivers relation.
//
// Complexity: O(k² + |donates|) for k categories.
func New(types []string, donates map[string][]string) (*Table, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no types", ErrInvalidTable)
	}
	ix, err := index.New(normalizeAll(types))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	t := &Table{types: ix, ok: make([][]bool, ix.Len())}
	for i := range t.ok {
		t.ok[i] = make([]bool, ix.Len())
	}
	for donor, receivers := range donates {
		d, found := ix.Of(normalize(donor))
		if !found {
			return nil, fmt.Errorf("%w: donates from %w %q", ErrInvalidTable, ErrUnknownType, donor)
		}
		for _, rt := range receivers {
			r, found := ix.Of(normalize(rt))
			if !found {
				return nil, fmt.Errorf("%w: %q donates to %w %q", ErrInvalidTable, donor, ErrUnknownType, rt)
			}
			t.ok[d][r] = true
		}
	}

	return t, nil
}

// Types returns the categories in table order.
func (t *Table) Types() []string { return t.types.Labels() }

// Compatible reports whether donorType may donate to receiverType.
// Labels are compared case-insensitively with surrounding space ignored.
func (t *Table) Compatible(donorType, receiverType string) (bool, error) {
	d, ok := t.types.Of(normalize(donorType))
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownType, donorType)
	}
	r, ok := t.types.Of(normalize(receiverType))
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownType, receiverType)
	}

	return t.ok[d][r], nil
}

// Predicate returns a donor/receiver predicate resolving donors through
// donorTypes and receivers through receiverTypes, so one label may name a
// different person on each side. Its signature matches bipartite.Predicate.
func (t *Table) Predicate(donorTypes, receiverTypes map[string]string) func(donor, receiver string) (bool, error) {
	return func(donor, receiver string) (bool, error) {
		dt, ok := donorTypes[donor]
		if !ok {
			return false, fmt.Errorf("%w: donor %q", ErrUnknownParticipant, donor)
		}
		rt, ok := receiverTypes[receiver]
		if !ok {
			return false, fmt.Errorf("%w: receiver %q", ErrUnknownParticipant, receiver)
		}

		return t.Compatible(dt, rt)
	}
}

// TypeMap indexes one side's people by ID. Later entries win.
func TypeMap(people []Person) map[string]string {
	out := make(map[string]string, len(people))
	for _, p := range people {
		out[p.ID] = p.BloodType
	}

	return out
}

func normalize(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func normalizeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = normalize(s)
	}

	return out
}
