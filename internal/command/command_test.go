// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexOcculate/ProgrammingAssignment2/internal/config"
	"github.com/AlexOcculate/ProgrammingAssignment2/internal/matrixio"
	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// isolate keeps the developer's config and CACHEMATRIX_* env out of the
// test and captures log entries.
func isolate(t *testing.T, cfgFile string) *memory.Handler {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("APPDATA", "")
	t.Setenv(config.EnvPath, cfgFile)
	for _, name := range []string{"FORMAT", "DIGITS", "TOLERANCE", "COLOR"} {
		t.Setenv(EnvPrefix+name, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+name))
	}

	h := memory.New()
	log.SetHandler(h)
	log.SetLevel(log.DebugLevel)

	return h
}

func hits(h *memory.Handler) int {
	n := 0
	for _, e := range h.Entries {
		if e.Message == "getting cached inverse" {
			n++
		}
	}
	return n
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	ctx := context.Background()
	args = append([]string{"cachematrix"}, args...)

	app, err := InitApp(ctx, args)
	require.NoError(t, err)

	var out bytes.Buffer
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = io.Discard

	err = app.Run(ctx, args)
	return out.String(), err
}

// decodeAll reads consecutive JSON values.
func decodeAll(t *testing.T, s string) []any {
	t.Helper()
	var vals []any
	dec := json.NewDecoder(strings.NewReader(s))
	for dec.More() {
		var v any
		require.NoError(t, dec.Decode(&v))
		vals = append(vals, v)
	}
	return vals
}

func matrixDoc(rows ...[]any) map[string]any {
	return map[string]any{
		"rows":   float64(len(rows)),
		"cols":   float64(len(rows[0])),
		"matrix": anySlice(rows),
	}
}

func anySlice(rows [][]any) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

func statsDoc(h, m, f float64) map[string]any {
	return map[string]any{"hits": h, "misses": m, "failures": f}
}

func TestInitApp_Commands(t *testing.T) {
	isolate(t, "")
	app, err := InitApp(context.Background(), []string{"cachematrix"})
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
		assert.Equal(t, []string{"cachematrix"}, GetMeta(c).Args)

		// Global flags are present and sorted.
		var flags []string
		for _, f := range c.Flags {
			flags = append(flags, f.Names()[0])
		}
		assert.Subset(t, flags, []string{"color", "digits", "format", "tolerance"})
		assert.IsIncreasing(t, flags)
	}
	assert.Equal(t, []string{"invert", "session", "demo"}, names)
}

func TestInitApp_BadConfig(t *testing.T) {
	isolate(t, filepath.Join("testdata", "invalid.yaml"))
	_, err := InitApp(context.Background(), []string{"cachematrix"})
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))

	isolate(t, filepath.Join("testdata", "missing.yaml"))
	_, err = InitApp(context.Background(), []string{"cachematrix"})
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestGetMeta_Missing(t *testing.T) {
	assert.Equal(t, Meta{}, GetMeta(nil))
}

func TestInvert_StdinRepeatStats(t *testing.T) {
	h := isolate(t, "")
	out, err := run(t, "[[4, 7], [2, 6]]", "invert", "--format", "json", "--repeat", "3", "--stats")
	require.NoError(t, err)

	assert.Equal(t, []any{
		matrixDoc([]any{0.6, -0.7}, []any{-0.2, 0.4}),
		statsDoc(2, 1, 0),
	}, decodeAll(t, out))
	assert.Equal(t, 2, hits(h))
}

func TestInvert_FileWithPath(t *testing.T) {
	isolate(t, "")
	out, err := run(t, "", "invert", "--format", "json", "--path", "data.matrix", filepath.Join("testdata", "inverse.json"))
	require.NoError(t, err)

	assert.Equal(t, []any{matrixDoc([]any{0.6, -0.7}, []any{-0.2, 0.4})}, decodeAll(t, out))
}

func TestInvert_DashReadsStdin(t *testing.T) {
	isolate(t, "")
	out, err := run(t, "matrix:\n  - [2, 0]\n  - [0, 4]\n", "invert", "--format", "json", "--input", "yaml", "-")
	require.NoError(t, err)

	assert.Equal(t, []any{matrixDoc([]any{0.5, 0.0}, []any{0.0, 0.25})}, decodeAll(t, out))
}

func TestInvert_ConfigSources(t *testing.T) {
	isolate(t, filepath.Join("testdata", "config.yaml"))
	out, err := run(t, "[[3, 0], [0, 3]]", "invert")
	require.NoError(t, err)

	// invert.format and the global digits come from the file.
	assert.Equal(t, "rows: 2\ncols: 2\nmatrix: [[0.33, 0], [0, 0.33]]\n", out)
}

func TestInvert_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.ErrorCode
		is    error
	}{
		{"singular", "", []string{"invert", filepath.Join("testdata", "singular.yaml")}, errors.CodeExecutionFailed, matrix.ErrSingular},
		{"non-square", "[[1, 2, 3]]", []string{"invert"}, errors.CodeExecutionFailed, matrix.ErrNonSquare},
		{"not numeric", "[[1, x], [0, 1]]", []string{"invert"}, errors.CodeInvalidInput, matrixio.ErrNotNumeric},
		{"ragged", "[[1, 2], [3]]", []string{"invert"}, errors.CodeInvalidInput, matrix.ErrRagged},
		{"empty", "", []string{"invert"}, errors.CodeInvalidInput, matrixio.ErrEmpty},
		{"missing file", "", []string{"invert", filepath.Join("testdata", "nope.yaml")}, errors.CodeInvalidInput, os.ErrNotExist},
		{"bad path", "", []string{"invert", "--path", "data.nope", filepath.Join("testdata", "inverse.json")}, errors.CodeInvalidInput, matrixio.ErrFormat},
		{"tight tolerance", "[[1, 1], [1, 1.0000000001]]", []string{"invert", "--tolerance", "1e-8"}, errors.CodeExecutionFailed, matrix.ErrNotInvertible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, "")
			_, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestInvert_InvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"invert", "--format", "csv"},
		{"invert", "--repeat", "0"},
		{"invert", "--digits", "40"},
		{"invert", "--digits", "many"},
		{"invert", "--tolerance", "-1"},
		{"invert", "--input", "toml"},
	} {
		isolate(t, "")
		out, err := run(t, "[[1]]", args...)
		require.Error(t, err, "%v", args)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err), "%v", args)
		assert.Empty(t, out, "%v", args)
	}
}

func TestGlobalFlags_InvalidSources(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		isolate(t, "")
		t.Setenv(EnvPrefix+"TOLERANCE", "-1")
		_, err := run(t, "", "demo")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		assert.Contains(t, err.Error(), "invalid --tolerance")
	})

	t.Run("config", func(t *testing.T) {
		dir := t.TempDir()
		cfg := filepath.Join(dir, "cachematrix.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("session:\n  digits: 99\n"), 0o600))
		isolate(t, cfg)

		_, err := run(t, "", "session")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		assert.Contains(t, err.Error(), "invalid --digits")

		// The namespace only applies to its own command.
		_, err = run(t, "[[2]]", "invert")
		assert.NoError(t, err)
	})
}

func TestSessionCommand_Script(t *testing.T) {
	h := isolate(t, "")
	out, err := run(t, "", "session", "--format", "json", filepath.Join("testdata", "script.txt"))
	require.NoError(t, err)

	half := matrixDoc([]any{0.5, 0.0}, []any{0.0, 0.5})
	assert.Equal(t, []any{
		false,
		half,
		half,
		true,
		false,
		matrixDoc([]any{1.0, 0.0}, []any{0.0, 1.0}),
		statsDoc(1, 2, 0),
	}, decodeAll(t, out))
	assert.Equal(t, 1, hits(h))
}

func TestSessionCommand_Stdin(t *testing.T) {
	isolate(t, "")
	out, err := run(t, "set [[4]]\ninverse\n", "session", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "rows: 1\ncols: 1\nmatrix: [[0.25]]\n", out)
}

func TestDemoCommand(t *testing.T) {
	h := isolate(t, "")
	out, err := run(t, "", "demo")
	require.NoError(t, err)

	for _, s := range []string{"(computed)", "(cached)", "(recomputed)", "0.5", "hits"} {
		assert.Contains(t, out, s)
	}
	assert.Equal(t, 1, hits(h))
}
