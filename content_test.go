package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContent_Defaults(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)
	assert.Equal(t, defaultContent.Name, c.Name)
	assert.NotEmpty(t, c.Projects)
}

func TestLoadContent_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("name: Test Person\nprojects:\n  - name: Thing\n    description: Does stuff\n"), 0600))

	c, err := LoadContent(path)
	assert.NoError(t, err)
	assert.Equal(t, "Test Person", c.Name)
	assert.Len(t, c.Projects, 1)
	assert.NotEmpty(t, c.Jobs)

	_, err = LoadContent(path + ".missing")
	assert.Error(t, err)
}
