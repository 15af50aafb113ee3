package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const pokemonCSV = `id,identifier,height,date
1,bulbasaur,7,2018-01-01
2,ivysaur,10,2018-01-02
3,venusaur,twenty,2018-01-03
`

func executeCommand(args ...string) (string, string, error) {
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// writeProject writes input.csv and pipeline.yaml into a temp dir and returns
// the definition path.
func writeProject(t *testing.T, definition string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.csv"), []byte(pokemonCSV), 0o644))
	path := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definition), 0o644))
	return path
}
