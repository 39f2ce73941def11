// Package instance reads and writes the YAML problem files used by the
// lvmatch command.
package instance

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatch/bipartite"
	"github.com/katalvlaran/lvmatch/bloodtype"
	"github.com/katalvlaran/lvmatch/stable"
)

// ErrInvalidInstance is returned for payloads that decode but cannot be used.
var ErrInvalidInstance = errors.New("instance: invalid instance")

// Stable is a two-sided ranked-preference problem.
//
//	proposers:
//	  A: [X, Y]
//	receivers:
//	  X: [A]
type Stable struct {
	Proposers stable.Preferences `yaml:"proposers"`
	Receivers stable.Preferences `yaml:"receivers"`
}

// Donors is a donor/receiver problem. Compatible, when present, lists the
// allowed (donor, receiver) pairs and replaces the category table.
type Donors struct {
	Donors     []bloodtype.Person `yaml:"donors"`
	Receivers  []bloodtype.Person `yaml:"receivers"`
	Compatible [][]string         `yaml:"compatible,omitempty"`
}

// ParseStable decodes a stable instance.
func ParseStable(data []byte) (*Stable, error) {
	var s Stable
	if err := decode(data, &s); err != nil {
		return nil, err
	}
	if len(s.Proposers) == 0 && len(s.Receivers) == 0 {
		return nil, fmt.Errorf("%w: no proposers and no receivers", ErrInvalidInstance)
	}

	return &s, nil
}

// LoadStable reads a stable instance from path.
func LoadStable(path string) (*Stable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	s, err := ParseStable(data)
	if err != nil {
		return nil, fmt.Errorf("instance: %s: %w", path, err)
	}

	return s, nil
}

// ParseDonors decodes a donor instance.
func ParseDonors(data []byte) (*Donors, error) {
	var d Donors
	if err := decode(data, &d); err != nil {
		return nil, err
	}
	if len(d.Compatible) == 0 {
		return &d, nil
	}

	donors, receivers := idSet(d.Donors), idSet(d.Receivers)
	for i, pair := range d.Compatible {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: compatible[%d] has %d entries, want 2", ErrInvalidInstance, i, len(pair))
		}
		if _, ok := donors[pair[0]]; !ok {
			return nil, fmt.Errorf("%w: compatible[%d] names unknown donor %q", ErrInvalidInstance, i, pair[0])
		}
		if _, ok := receivers[pair[1]]; !ok {
			return nil, fmt.Errorf("%w: compatible[%d] names unknown receiver %q", ErrInvalidInstance, i, pair[1])
		}
	}

	return &d, nil
}

// LoadDonors reads a donor instance from path.
func LoadDonors(path string) (*Donors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	d, err := ParseDonors(data)
	if err != nil {
		return nil, fmt.Errorf("instance: %s: %w", path, err)
	}

	return d, nil
}

// DonorIDs returns donor identifiers in file order.
func (d *Donors) DonorIDs() []string { return ids(d.Donors) }

// ReceiverIDs returns receiver identifiers in file order.
func (d *Donors) ReceiverIDs() []string { return ids(d.Receivers) }

// Predicate returns the explicit pair list when present, otherwise the
// category predicate of table.
func (d *Donors) Predicate(table *bloodtype.Table) bipartite.Predicate {
	if len(d.Compatible) > 0 {
		pairs := make([][2]string, len(d.Compatible))
		for i, p := range d.Compatible {
			pairs[i] = [2]string{p[0], p[1]}
		}
		return bipartite.FromPairs(pairs)
	}

	return table.Predicate(bloodtype.TypeMap(d.Donors), bloodtype.TypeMap(d.Receivers))
}

// Marshal encodes v as YAML with two-space indentation.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("instance: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("instance: encode: %w", err)
	}

	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: payload is empty", ErrInvalidInstance)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrInvalidInstance, err)
	}

	return nil
}

func idSet(people []bloodtype.Person) map[string]struct{} {
	out := make(map[string]struct{}, len(people))
	for _, p := range people {
		out[p.ID] = struct{}{}
	}

	return out
}

func ids(people []bloodtype.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.ID
	}

	return out
}
