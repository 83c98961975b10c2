package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/dockerfile/pkg/app"
	"github.com/jesseduffield/dockerfile/pkg/config"
	"github.com/jesseduffield/dockerfile/pkg/spec"
	"github.com/jesseduffield/dockerfile/pkg/utils"
	yaml "github.com/jesseduffield/yaml"
)

var (
	commit      string
	version     = "unversioned"
	date        string
	buildSource = "unknown"

	exampleFlag   = false
	debuggingFlag = false
	specFile      = "dockerfile.yml"
	outputFile    = ""
)

func main() {
	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	flaggy.SetName("dockerfile-gen")
	flaggy.SetDescription("Generate Dockerfiles from YAML build specs")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/jesseduffield/dockerfile"

	flaggy.Bool(&exampleFlag, "e", "example", "Print an example build spec")
	flaggy.Bool(&debuggingFlag, "d", "debug", "a boolean")
	flaggy.String(&specFile, "f", "file", "Specify an alternate build spec file")
	flaggy.String(&outputFile, "o", "output", "Write the Dockerfile to this path instead of stdout")
	flaggy.SetVersion(info)

	flaggy.Parse()

	if exampleFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		err := encoder.Encode(spec.Example())
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", buf.String())
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("dockerfile-gen", version, commit, date, buildSource, debuggingFlag)
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := app.NewApp(appConfig).Generate(specFile, outputFile); err != nil {
		fmt.Fprintln(os.Stderr, utils.ColoredString(err.Error(), color.FgRed))
		os.Exit(1)
	}
}
