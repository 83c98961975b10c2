package app

import (
	"os"

	"github.com/jesseduffield/dockerfile/pkg/config"
	"github.com/jesseduffield/dockerfile/pkg/dockerfile"
	"github.com/jesseduffield/dockerfile/pkg/log"
	"github.com/jesseduffield/dockerfile/pkg/spec"
	"github.com/jesseduffield/dockerfile/pkg/utils"
	"github.com/sirupsen/logrus"
)

// App struct
type App struct {
	Config *config.AppConfig
	Log    *logrus.Entry
}

// NewApp bootstrap a new application
func NewApp(config *config.AppConfig) *App {
	return &App{
		Config: config,
		Log:    log.NewLogger(config),
	}
}

// Generate loads the build spec at specPath and writes the rendered
// Dockerfile to outputPath, or to stdout when outputPath is empty.
func (app *App) Generate(specPath, outputPath string) error {
	content, err := os.ReadFile(specPath)
	if err != nil {
		return dockerfile.WrapError(err)
	}

	loaded, err := spec.Load(content)
	if err != nil {
		return err
	}

	file, err := loaded.Dockerfile()
	if err != nil {
		return err
	}

	app.Log.WithFields(logrus.Fields{
		"spec":  specPath,
		"lines": len(utils.SplitLines(file.Render())),
	}).Info("rendered Dockerfile")

	return app.write(file, outputPath)
}

// write sends the rendered Dockerfile to its destination. The output file
// handle only lives for the duration of this function.
func (app *App) write(file *dockerfile.Dockerfile, outputPath string) error {
	if outputPath == "" {
		_, err := file.WriteTo(os.Stdout)
		return dockerfile.WrapError(err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return dockerfile.WrapError(err)
	}
	if _, err := file.WriteTo(out); err != nil {
		out.Close()
		return dockerfile.WrapError(err)
	}
	return dockerfile.WrapError(out.Close())
}
