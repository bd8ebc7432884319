package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linesep/core/config"
)

func writeInput(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "vectors.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Setenv(config.EnvConfigPath, t.TempDir())
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassifyCMD(t *testing.T) {
	resetFlags()
	path := writeInput(t, "2\n1\n1,0,1\n1,0\n-1,0\n0.5,3\n")

	out, err := execute(t, classifyCMD(), path)
	require.NoError(t, err)
	assert.Equal(t, "1\n-1\n1\n", out)
}

func TestClassifyCMDEpsilonFlag(t *testing.T) {
	resetFlags()
	path := writeInput(t, "1\n1\n5,1\n3\n1\n")

	out, err := execute(t, classifyCMD(), "--epsilon", "10", path)
	require.NoError(t, err)
	assert.Equal(t, "1\n-1\n", out)
}

func TestClassifyCMDStrictFlag(t *testing.T) {
	resetFlags()
	path := writeInput(t, "1\n0\nx\n")

	out, err := execute(t, classifyCMD(), path)
	require.NoError(t, err)
	assert.Equal(t, "-1\n", out)

	resetFlags()
	_, err = execute(t, classifyCMD(), "--strict", path)
	assert.Error(t, err)
}

func TestClassifyCMDArgs(t *testing.T) {
	resetFlags()
	_, err := execute(t, classifyCMD())
	assert.Error(t, err)

	resetFlags()
	_, err = execute(t, classifyCMD(), "a", "b")
	assert.Error(t, err)
}

func TestClassifyCMDMissingFile(t *testing.T) {
	resetFlags()
	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, err := execute(t, classifyCMD(), missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}

func TestTrainCMD(t *testing.T) {
	resetFlags()
	path := writeInput(t, "2\n3\n1,0.5,1\n1,1,-1\n-2,0,1\n9,9\n")

	out, err := execute(t, trainCMD(), path)
	require.NoError(t, err)
	// (1,0.5); (1,1) gives 1.5 so predicted 1, label -1 → (0,-0.5);
	// (-2,0) gives 0 so predicted -1, label 1 → (-2,-0.5)
	assert.Equal(t, "-2,-0.5\n", out)
}

func TestMainCmdHasSubcommands(t *testing.T) {
	resetFlags()
	cmd := newMainCmd()
	for _, name := range []string{"classify", "train"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestWriteSeparator(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSeparator(&buf, []float64{1, -0.25, 3e-7}))
	assert.Equal(t, "1,-0.25,3e-07\n", buf.String())
}
