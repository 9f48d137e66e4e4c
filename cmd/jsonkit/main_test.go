package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsonkit.dev/jsonkit"
)

func TestSelectedModeDefaultsToFlatten(t *testing.T) {
	t.Parallel()

	assert.Equal(t, modeFlatten, selectedMode(&cliConfig{}))
}

func TestSelectedModeLastFlagWins(t *testing.T) {
	t.Parallel()

	cfg := newCLIConfig()
	cmd := newRootCommand(cfg)

	require.NoError(t, cmd.ParseFlags([]string{"--schema", "--remove-nulls"}))

	assert.Equal(t, modeRemoveNulls, selectedMode(cfg))
}

func TestSelectedModeReplaceKeysWinsOverEarlierMode(t *testing.T) {
	t.Parallel()

	cfg := newCLIConfig()
	cmd := newRootCommand(cfg)

	require.NoError(t, cmd.ParseFlags([]string{"--remove-nulls", "--replace-keys=^old_="}))

	assert.Equal(t, modeReplaceKeys, selectedMode(cfg))
	assert.Equal(t, "^old_", cfg.replaceKeys.pattern)
	assert.Empty(t, cfg.replaceKeys.replacement)
}

func TestSelectedModeBareModeWinsOverEarlierReplace(t *testing.T) {
	t.Parallel()

	cfg := newCLIConfig()
	cmd := newRootCommand(cfg)

	require.NoError(t, cmd.ParseFlags([]string{"--replace-keys=^old_=", "--flatten"}))

	assert.Equal(t, modeFlatten, selectedMode(cfg))
}

func TestRewriteFlagRejectsMissingEquals(t *testing.T) {
	t.Parallel()

	r := &rewriteFlag{onSet: func() {}}
	err := r.Set("no-equals-sign")
	assert.Error(t, err)
	assert.False(t, r.set)
}

func TestRewriteFlagParsesPatternReplacement(t *testing.T) {
	t.Parallel()

	var fired bool

	r := &rewriteFlag{onSet: func() { fired = true }}
	require.NoError(t, r.Set("red=blue"))

	assert.True(t, fired)
	assert.Equal(t, "red", r.pattern)
	assert.Equal(t, "blue", r.replacement)
	assert.Equal(t, "red=blue", r.String())
}

func TestExitCodeForUsageError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, exitCodeFor(errUsage))
	assert.Equal(t, 2, exitCodeFor(&jsonkit.Error{Kind: jsonkit.KindUsageError}))
}

func TestExitCodeForOtherErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, exitCodeFor(errIO))
	assert.Equal(t, 1, exitCodeFor(&jsonkit.Error{Kind: jsonkit.KindParseError}))
}

// TestMalformedFlagExitsAsUsageError exercises the real cobra/pflag parse
// path (not a hand-constructed error) for a malformed flag value, the
// scenario spec.md §6's exit-code table calls a usage error.
func TestMalformedFlagExitsAsUsageError(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand(newCLIConfig())
	cmd.SetArgs([]string{"--threads=abc"})
	cmd.SetOut(new(discardWriter))
	cmd.SetErr(new(discardWriter))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}

// TestTooManyArgsExitsAsUsageError exercises cobra's own positional-arg
// validation failing, which also must surface as a usage error.
func TestTooManyArgsExitsAsUsageError(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand(newCLIConfig())
	cmd.SetArgs([]string{"one.json", "two.json"})
	cmd.SetOut(new(discardWriter))
	cmd.SetErr(new(discardWriter))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeFor(err))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestBuildOutputFlattenDefault(t *testing.T) {
	t.Parallel()

	cfg := newCLIConfig()

	out, err := buildOutput(cfg, `{"a":{"b":1}}`, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a.b":1}`, out)
}

func TestBuildOutputReplaceKeysMode(t *testing.T) {
	t.Parallel()

	cfg := newCLIConfig()
	cmd := newRootCommand(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--replace-keys=^old_="}))

	out, err := buildOutput(cfg, `{"old_a":1,"keep":2}`, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"keep":2}`, out)
}

func TestBuildOutputSchemaMode(t *testing.T) {
	t.Parallel()

	cfg := newCLIConfig()
	cmd := newRootCommand(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--schema"}))

	out, err := buildOutput(cfg, `{"a":1}`, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `"$schema"`)
}

func TestReadInputFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := dir + "/doc.json"
	require.NoError(t, writeOutput(path, `{"a":1}`))

	text, err := readInput([]string{path})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, text)
}

func TestNewRootCommandRegistersCompletionsWithoutError(t *testing.T) {
	t.Parallel()

	cfg := newCLIConfig()
	cmd := newRootCommand(cfg)

	levelFn, ok := cmd.GetFlagCompletionFunc("log-level")
	require.True(t, ok)
	require.NotNil(t, levelFn)
}

func TestReadInputMissingFile(t *testing.T) {
	t.Parallel()

	_, err := readInput([]string{"/nonexistent/does-not-exist.json"})
	assert.Error(t, err)
}
