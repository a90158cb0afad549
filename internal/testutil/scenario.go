package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario for the reflective core.
// Scenarios construct two equal fixture instances, named "a" and "b",
// run a sequence of steps against them and a fresh prefab pool, and
// assert on the surviving instances.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture names the subject constructor; see NewFixture for the
	// known names. Both initial instances come from it.
	Fixture string `yaml:"fixture"`

	// Steps contains the operations to run, in order.
	Steps []Step `yaml:"steps"`

	// Checks validate the final instances.
	Checks []Check `yaml:"checks"`
}

// Step represents a single operation against an instance or the pool.
type Step struct {
	// Op is the operation type:
	//   - "scramble": change every non-frozen field of an instance
	//   - "shallow_scramble": change only the instance's own fields
	//   - "clone": shallow-copy an instance under a new name
	//   - "clone_synthetic": clone into the synthesized subtype
	//   - "change": change a single named field
	//   - "register": install a registered substitute pair in the pool
	Op string `yaml:"op"`

	// On names the instance the operation mutates (scramble,
	// shallow_scramble, change).
	On string `yaml:"on,omitempty"`

	// From names the instance a clone reads from.
	From string `yaml:"from,omitempty"`

	// As names the instance a clone creates.
	As string `yaml:"as,omitempty"`

	// Field is the field name to change (change).
	Field string `yaml:"field,omitempty"`

	// Register names the substitute set to install; see RegistrationFor
	// for the known names.
	Register string `yaml:"register,omitempty"`

	// Expect specifies the expected failure. If nil, the step must
	// succeed.
	Expect *StepExpect `yaml:"expect,omitempty"`
}

// StepExpect specifies an expected step failure.
type StepExpect struct {
	// Error is the expected error kind: "value", "instantiation" or
	// "type_mismatch".
	Error string `yaml:"error"`
}

// Check validates final instances against each other.
type Check struct {
	// Type specifies the check type:
	//   - "equal": instances compare equal
	//   - "not_equal": instances do not compare equal
	//   - "same_type": instances have the same dynamic type
	//   - "distinct_type": instances have different dynamic types
	//   - "fields_equal": the named fields hold equal values
	//   - "fields_differ": the named fields hold unequal values
	Type string `yaml:"type"`

	// Left and Right name the instances under comparison.
	Left  string `yaml:"left"`
	Right string `yaml:"right"`

	// Fields lists the field names for the per-field checks.
	Fields []string `yaml:"fields,omitempty"`
}

// Step operation constants.
const (
	OpScramble        = "scramble"
	OpShallowScramble = "shallow_scramble"
	OpClone           = "clone"
	OpCloneSynthetic  = "clone_synthetic"
	OpChange          = "change"
	OpRegister        = "register"
)

// Check type constants.
const (
	CheckEqual        = "equal"
	CheckNotEqual     = "not_equal"
	CheckSameType     = "same_type"
	CheckDistinctType = "distinct_type"
	CheckFieldsEqual  = "fields_equal"
	CheckFieldsDiffer = "fields_differ"
)

// Expected error kind constants.
const (
	ErrKindValue         = "value"
	ErrKindInstantiation = "instantiation"
	ErrKindTypeMismatch  = "type_mismatch"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario under dir, sorted by file
// name so test ordering stays stable.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Fixture == "" {
		return fmt.Errorf("fixture is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Checks) == 0 {
		return fmt.Errorf("checks list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, check := range s.Checks {
		if err := validateCheck(i, &check); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(index int, st *Step) error {
	if st.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}

	switch st.Op {
	case OpScramble, OpShallowScramble:
		if st.On == "" {
			return fmt.Errorf("steps[%d]: on is required for %s", index, st.Op)
		}
	case OpClone, OpCloneSynthetic:
		if st.From == "" {
			return fmt.Errorf("steps[%d]: from is required for %s", index, st.Op)
		}
		if st.As == "" {
			return fmt.Errorf("steps[%d]: as is required for %s", index, st.Op)
		}
	case OpChange:
		if st.On == "" {
			return fmt.Errorf("steps[%d]: on is required for change", index)
		}
		if st.Field == "" {
			return fmt.Errorf("steps[%d]: field is required for change", index)
		}
	case OpRegister:
		if st.Register == "" {
			return fmt.Errorf("steps[%d]: register is required for register", index)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}

	if st.Expect != nil {
		switch st.Expect.Error {
		case ErrKindValue, ErrKindInstantiation, ErrKindTypeMismatch:
		default:
			return fmt.Errorf("steps[%d].expect: unknown error kind %q", index, st.Expect.Error)
		}
	}

	return nil
}

// validateCheck validates a single check based on its type.
func validateCheck(index int, c *Check) error {
	if c.Type == "" {
		return fmt.Errorf("checks[%d]: type is required", index)
	}

	switch c.Type {
	case CheckEqual, CheckNotEqual, CheckSameType, CheckDistinctType:
	case CheckFieldsEqual, CheckFieldsDiffer:
		if len(c.Fields) == 0 {
			return fmt.Errorf("checks[%d]: fields list is required for %s", index, c.Type)
		}
	default:
		return fmt.Errorf("checks[%d]: unknown check type %q", index, c.Type)
	}

	if c.Left == "" || c.Right == "" {
		return fmt.Errorf("checks[%d]: left and right are required", index)
	}

	return nil
}
