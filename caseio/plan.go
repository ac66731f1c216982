// SPDX-License-Identifier: MIT
package caseio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
	"gopkg.in/yaml.v3"
)

// Plan is an ordered list of flag steps.
type Plan struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step is one SetFlags call, one SetFlagsOf call (Index set) or, with Clear,
// one ClearFlags call. Tokens use the lower-case names of the quantity and
// network packages: object "bus", flags "vars|sparse", property
// "reg_by_gen|not_slack", quantities "vmag|vang" or "all".
type Step struct {
	Clear      bool   `yaml:"clear,omitempty"`
	Object     string `yaml:"object,omitempty" validate:"required_unless=Clear true"`
	Flags      string `yaml:"flags,omitempty" validate:"required_unless=Clear true"`
	Property   string `yaml:"property,omitempty" validate:"excluded_with=Index"`
	Index      *int   `yaml:"index,omitempty" validate:"omitempty,gte=0"`
	Quantities string `yaml:"quantities,omitempty"`
}

// String renders s the way the CLI logs it.
func (s Step) String() string {
	if s.Clear {
		return "clear"
	}
	target := s.Property
	if s.Index != nil {
		target = fmt.Sprintf("#%d", *s.Index)
	}
	if target == "" {
		target = "any"
	}

	return fmt.Sprintf("%s %s %s %s", s.Object, target, s.Flags, s.Quantities)
}

// DecodePlan reads one YAML plan document from r. Unknown keys are rejected.
func DecodePlan(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("DecodePlan: %w: empty document", ErrInvalidPlan)
		}
		return nil, fmt.Errorf("DecodePlan: %w: %w", ErrInvalidPlan, err)
	}
	if err := check(&p, ErrInvalidPlan); err != nil {
		return nil, fmt.Errorf("DecodePlan: %w", err)
	}

	return &p, nil
}

// LoadPlan reads and validates the plan file at path.
func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadPlan: %w", err)
	}
	defer f.Close()

	p, err := DecodePlan(f)
	if err != nil {
		return nil, fmt.Errorf("LoadPlan: %s: %w", path, err)
	}

	return p, nil
}

// ApplyPlan applies the steps of p to n in order and stops at the first
// failure. Steps before the failing one stay applied; the failing step itself
// changes nothing.
func ApplyPlan(n *network.Network, p *Plan) error {
	if p == nil {
		return fmt.Errorf("ApplyPlan: %w: nil plan", ErrInvalidPlan)
	}
	if err := check(p, ErrInvalidPlan); err != nil {
		return fmt.Errorf("ApplyPlan: %w", err)
	}
	for i, s := range p.Steps {
		if err := applyStep(n, s); err != nil {
			return fmt.Errorf("ApplyPlan: step %d (%s): %w", i, s, err)
		}
	}

	return nil
}

func applyStep(n *network.Network, s Step) error {
	if s.Clear {
		n.ClearFlags()
		return nil
	}
	obj, err := quantity.ParseObjectType(s.Object)
	if err != nil {
		return err
	}
	fs, err := quantity.ParseFlagSet(s.Flags)
	if err != nil {
		return err
	}
	mask, err := quantity.ParseMask(obj, s.Quantities)
	if err != nil {
		return err
	}
	if s.Index != nil {
		return n.SetFlagsOf(obj, *s.Index, fs, mask)
	}
	prop, err := network.ParseProperty(obj, s.Property)
	if err != nil {
		return err
	}

	return n.SetFlags(obj, fs, prop, mask)
}
