package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jesseduffield/dockerfile/pkg/config"
	"github.com/stretchr/testify/assert"
)

func testApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	appConfig, err := config.NewAppConfig("dockerfile-gen", "test", "", "", "", false)
	assert.NoError(t, err)
	return NewApp(appConfig)
}

// TestGenerateToFile is a function.
func TestGenerateToFile(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "dockerfile.yml")
	outputPath := filepath.Join(dir, "Dockerfile")

	yamlContent := `from:
  image: nginx
  tag: latest
instructions:
  - comment: open port for server
  - expose:
      port: 80
  - copy:
      src: .
      dst: .
  - cmd: [echo, "Hello from container!"]
`
	assert.NoError(t, os.WriteFile(specPath, []byte(yamlContent), 0o644))

	app := testApp(t)
	assert.NoError(t, app.Generate(specPath, outputPath))

	written, err := os.ReadFile(outputPath)
	assert.NoError(t, err)

	expected := `FROM nginx:latest

# open port for server
EXPOSE 80
COPY . .

CMD ["echo", "Hello from container!"]
`
	assert.EqualValues(t, expected, string(written))
}

// TestGenerateMissingSpecFile is a function.
func TestGenerateMissingSpecFile(t *testing.T) {
	app := testApp(t)
	err := app.Generate(filepath.Join(t.TempDir(), "nope.yml"), "")
	assert.Error(t, err)
}

// TestGenerateBadSpec is a function.
func TestGenerateBadSpec(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "dockerfile.yml")
	assert.NoError(t, os.WriteFile(specPath, []byte("instructions: []"), 0o644))

	app := testApp(t)
	err := app.Generate(specPath, filepath.Join(dir, "Dockerfile"))
	assert.Error(t, err)

	// nothing should have been written
	_, err = os.Stat(filepath.Join(dir, "Dockerfile"))
	assert.True(t, os.IsNotExist(err))
}
