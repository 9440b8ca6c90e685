package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errorsYAML = `
types:
  - name: State
    fields: [{name: code, type: u8}]
enums:
  - name: SomeError
    variants:
      - name: Unit
        template: "hello unit"
      - name: Named
        fields: [{name: message, type: string}]
        template: "hello {message}"
      - name: StateError
        fields: [{type: State}, {type: string}, {type: i32}]
        template: "Unnamed error: {0:?}, {1}, 0x{2:0x}"
`

// syncBuffer is written by the watch command while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func catalogDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	listJSON = false
	renderFields, renderData, renderDir = nil, "", ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "enumtext version "))
}

func TestCheck(t *testing.T) {
	dir := catalogDir(t, map[string]string{"errors.yaml": errorsYAML})

	out, _, err := execute(t, "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "SomeError")
	assert.Contains(t, out, "3 variants")
	assert.Contains(t, out, "ok: 1 enums in 1 files")
}

func TestCheck_ReportsEveryError(t *testing.T) {
	dir := catalogDir(t, map[string]string{"bad.yaml": `
enums:
  - name: E
    variants:
      - name: A
        template: "{x"
      - name: B
        fields: [{type: i32}]
        template: "{3}"
`})

	_, stderr, err := execute(t, "check", dir)
	require.ErrorIs(t, err, errCatalogInvalid)
	assert.Contains(t, stderr, "E::A")
	assert.Contains(t, stderr, "E::B")
}

func TestList(t *testing.T) {
	dir := catalogDir(t, map[string]string{"errors.yaml": errorsYAML})

	out, _, err := execute(t, "list", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "SomeError (errors.yaml)")
	assert.Contains(t, out, "Named { message: string }")
	assert.Contains(t, out, "StateError(State, string, i32)")

	out, _, err = execute(t, "list", dir, "--json")
	require.NoError(t, err)
	var enums []enumInfo
	require.NoError(t, json.Unmarshal([]byte(out), &enums))
	require.Len(t, enums, 1)
	assert.Equal(t, "SomeError", enums[0].Name)
	require.Len(t, enums[0].Variants, 3)
	assert.Equal(t, variantInfo{Name: "Unit", Shape: "unit", Template: "hello unit"}, enums[0].Variants[0])
	assert.Equal(t, "positional", enums[0].Variants[2].Shape)
}

func TestRender(t *testing.T) {
	dir := catalogDir(t, map[string]string{"errors.yaml": errorsYAML})
	data := filepath.Join(dir, "instance.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"message": "from file"}`), 0644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unit", []string{"SomeError", "Unit"}, "hello unit"},
		{"field", []string{"SomeError", "Named", "--field", "message=world"}, "hello world"},
		{"positional", []string{"SomeError", "StateError", "{code: 2}", "state error", "32"}, "Unnamed error: State { code: 2 }, state error, 0x20"},
		{"negative hex", []string{"SomeError", "StateError", "{code: 2}", "x", "--", "-1"}, "Unnamed error: State { code: 2 }, x, 0xffffffff"},
		{"data file", []string{"SomeError", "Named", "--data", data}, "hello from file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"render", "--dir", dir}, tc.args...)
			out, _, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want+"\n", out)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	dir := catalogDir(t, map[string]string{"errors.yaml": errorsYAML})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown enum", []string{"Nope", "Unit"}, "unknown enum"},
		{"unknown variant", []string{"SomeError", "Nope"}, "unknown variant"},
		{"mixed input", []string{"SomeError", "Named", "x", "--field", "message=y"}, "cannot mix"},
		{"bad field", []string{"SomeError", "Named", "--field", "message"}, "expected name=value"},
		{"missing field", []string{"SomeError", "Named", "--field", "other=y"}, "SomeError::Named"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"render", "--dir", dir}, tc.args...)
			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestWatch(t *testing.T) {
	dir := catalogDir(t, map[string]string{"errors.yaml": errorsYAML})
	listJSON = false
	renderFields, renderData, renderDir = nil, "", ""

	var stdout, stderr syncBuffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"watch", dir})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "watching")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "more.yaml"),
		[]byte("enums: [{name: More, variants: [{name: A, template: a}]}]"), 0644))
	assert.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "(2 enums)")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
}
