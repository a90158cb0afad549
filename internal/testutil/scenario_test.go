package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// LoadScenario Tests
// =============================================================================

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "valid.yaml", `
name: sample
description: exercises the loader
fixture: point
steps:
  - op: scramble
    on: a
    expect:
      error: value
  - op: clone
    from: a
    as: snapshot
  - op: change
    on: a
    field: X
  - op: register
    register: paint
checks:
  - type: equal
    left: a
    right: b
  - type: fields_differ
    left: a
    right: snapshot
    fields: [X, y]
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "sample", sc.Name)
	assert.Equal(t, "point", sc.Fixture)
	require.Len(t, sc.Steps, 4)
	require.NotNil(t, sc.Steps[0].Expect)
	assert.Equal(t, ErrKindValue, sc.Steps[0].Expect.Error)
	assert.Nil(t, sc.Steps[1].Expect)
	assert.Equal(t, "snapshot", sc.Steps[1].As)
	assert.Equal(t, "X", sc.Steps[2].Field)
	assert.Equal(t, "paint", sc.Steps[3].Register)
	require.Len(t, sc.Checks, 2)
	assert.Equal(t, []string{"X", "y"}, sc.Checks[1].Fields)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: sample
description: d
fixture: point
wrongkey: true
steps:
  - op: scramble
    on: a
checks:
  - type: equal
    left: a
    right: b
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrongkey")
}

func TestLoadScenario_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "no name",
			content: `
description: d
fixture: point
steps:
  - op: scramble
    on: a
checks:
  - type: equal
    left: a
    right: b
`,
			wantErr: "name is required",
		},
		{
			name: "no description",
			content: `
name: sample
fixture: point
steps:
  - op: scramble
    on: a
checks:
  - type: equal
    left: a
    right: b
`,
			wantErr: "description is required",
		},
		{
			name: "no fixture",
			content: `
name: sample
description: d
steps:
  - op: scramble
    on: a
checks:
  - type: equal
    left: a
    right: b
`,
			wantErr: "fixture is required",
		},
		{
			name: "no steps",
			content: `
name: sample
description: d
fixture: point
checks:
  - type: equal
    left: a
    right: b
`,
			wantErr: "steps list is required",
		},
		{
			name: "no checks",
			content: `
name: sample
description: d
fixture: point
steps:
  - op: scramble
    on: a
`,
			wantErr: "checks list is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "bad.yaml", tc.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadScenario_StepValidation(t *testing.T) {
	cases := []struct {
		name    string
		steps   string
		wantErr string
	}{
		{
			name:    "unknown op",
			steps:   "  - op: explode\n    on: a",
			wantErr: `unknown op "explode"`,
		},
		{
			name:    "scramble without target",
			steps:   "  - op: scramble",
			wantErr: "steps[0]: on is required",
		},
		{
			name:    "clone without as",
			steps:   "  - op: clone\n    from: a",
			wantErr: "steps[0]: as is required",
		},
		{
			name:    "change without field",
			steps:   "  - op: change\n    on: a",
			wantErr: "steps[0]: field is required",
		},
		{
			name:    "register without set name",
			steps:   "  - op: register",
			wantErr: "steps[0]: register is required",
		},
		{
			name:    "unknown error kind",
			steps:   "  - op: scramble\n    on: a\n    expect:\n      error: mystery",
			wantErr: `unknown error kind "mystery"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content := `
name: sample
description: d
fixture: point
steps:
` + tc.steps + `
checks:
  - type: equal
    left: a
    right: b
`
			path := writeScenario(t, t.TempDir(), "bad.yaml", content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadScenario_CheckValidation(t *testing.T) {
	cases := []struct {
		name    string
		checks  string
		wantErr string
	}{
		{
			name:    "unknown check type",
			checks:  "  - type: sorted\n    left: a\n    right: b",
			wantErr: `unknown check type "sorted"`,
		},
		{
			name:    "field check without fields",
			checks:  "  - type: fields_equal\n    left: a\n    right: b",
			wantErr: "checks[0]: fields list is required",
		},
		{
			name:    "missing sides",
			checks:  "  - type: equal\n    left: a",
			wantErr: "checks[0]: left and right are required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content := `
name: sample
description: d
fixture: point
steps:
  - op: scramble
    on: a
checks:
` + tc.checks + `
`
			path := writeScenario(t, t.TempDir(), "bad.yaml", content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// =============================================================================
// LoadScenarios Tests
// =============================================================================

const minimalScenario = `
name: %s
description: d
fixture: point
steps:
  - op: scramble
    on: a
checks:
  - type: equal
    left: a
    right: b
`

func TestLoadScenarios_SortedByFileName(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "b.yaml", fmt.Sprintf(minimalScenario, "bravo"))
	writeScenario(t, dir, "a.yaml", fmt.Sprintf(minimalScenario, "alpha"))

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "alpha", scenarios[0].Name)
	assert.Equal(t, "bravo", scenarios[1].Name)
}

func TestLoadScenarios_EmptyDir(t *testing.T) {
	scenarios, err := LoadScenarios(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}

func TestLoadScenarios_NamesTheOffendingFile(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken.yaml", "name: [")

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}
