package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewAppConfig is a function.
func TestNewAppConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	appConfig, err := NewAppConfig("dockerfile-gen", "0.1", "abc123", "today", "source", false)
	assert.NoError(t, err)

	assert.EqualValues(t, "dockerfile-gen", appConfig.Name)
	assert.EqualValues(t, "0.1", appConfig.Version)
	assert.EqualValues(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "jesseduffield", "dockerfile-gen"), appConfig.ConfigDir)

	// the config dir should exist once the config has been created
	info, err := os.Stat(appConfig.ConfigDir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestNewAppConfigDebugFlag is a function.
func TestNewAppConfigDebugFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DEBUG", "")

	appConfig, err := NewAppConfig("dockerfile-gen", "0.1", "", "", "", true)
	assert.NoError(t, err)
	assert.True(t, appConfig.Debug)

	appConfig, err = NewAppConfig("dockerfile-gen", "0.1", "", "", "", false)
	assert.NoError(t, err)
	assert.False(t, appConfig.Debug)
}
