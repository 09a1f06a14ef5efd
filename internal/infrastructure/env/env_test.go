package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvService_Getters(t *testing.T) {
	t.Setenv("AGENT_TEST_BOOL", "true")
	t.Setenv("AGENT_TEST_BAD_BOOL", "maybe")
	t.Setenv("AGENT_TEST_INT", "42")
	t.Setenv("AGENT_TEST_STR", "value")

	e := &EnvService{}

	assert.True(t, e.GetBool("AGENT_TEST_BOOL", false))
	assert.True(t, e.GetBool("AGENT_TEST_BAD_BOOL", true))
	assert.False(t, e.GetBool("AGENT_TEST_UNSET_BOOL", false))
	assert.Equal(t, 42, e.GetInt("AGENT_TEST_INT", 1))
	assert.Equal(t, 7, e.GetInt("AGENT_TEST_STR", 7))
	assert.Equal(t, "value", e.GetWithDefault("AGENT_TEST_STR", "x"))
	assert.Equal(t, "x", e.GetWithDefault("AGENT_TEST_UNSET_STR", "x"))
}

func TestLoadEnvFiles_OverloadsAppEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AGENT_TEST_A=base\nAGENT_TEST_B=base\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.ci"), []byte("AGENT_TEST_B=ci\n"), 0600))
	testChdir(t, dir)
	t.Setenv("APP_ENV", "ci")
	clearEnv(t, "AGENT_TEST_A", "AGENT_TEST_B")

	e := NewProcessEnvService()
	assert.Empty(t, e.Get("AGENT_TEST_A"))

	LoadEnvFiles()
	assert.Equal(t, "base", e.Get("AGENT_TEST_A"))
	assert.Equal(t, "ci", e.Get("AGENT_TEST_B"))
}
