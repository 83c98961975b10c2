package spec

import (
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/dockerfile/pkg/dockerfile"
	yaml "github.com/jesseduffield/yaml"
)

// Spec is a YAML description of a Dockerfile: one base image plus an ordered
// list of instruction entries. It exists so an application can keep its image
// definition in config rather than in code; the tests in this package show
// what a spec file looks like.
type Spec struct {
	From         FromSpec          `yaml:"from"`
	Instructions []InstructionSpec `yaml:"instructions,omitempty"`
}

// FromSpec describes the base image.
type FromSpec struct {
	Image  string `yaml:"image"`
	Tag    string `yaml:"tag,omitempty"`
	Digest string `yaml:"digest,omitempty"`
	As     string `yaml:"as,omitempty"`
}

// InstructionSpec is one entry of the instructions list. Exactly one of its
// fields must be set; which one is set decides the instruction kind. We use
// pointers (and nilable slices/maps) so we can tell 'set to something empty'
// apart from 'not set at all'.
type InstructionSpec struct {
	Comment     *string          `yaml:"comment,omitempty"`
	Run         []string         `yaml:"run,omitempty"`
	Copy        *CopySpec        `yaml:"copy,omitempty"`
	Add         *AddSpec         `yaml:"add,omitempty"`
	Expose      *ExposeSpec      `yaml:"expose,omitempty"`
	Env         yaml.MapSlice    `yaml:"env,omitempty"`
	Volume      []string         `yaml:"volume,omitempty"`
	User        *UserSpec        `yaml:"user,omitempty"`
	WorkDir     *string          `yaml:"workdir,omitempty"`
	EntryPoint  []string         `yaml:"entrypoint,omitempty"`
	Cmd         []string         `yaml:"cmd,omitempty"`
	StopSignal  *string          `yaml:"stopsignal,omitempty"`
	Label       yaml.MapSlice    `yaml:"label,omitempty"`
	Maintainer  *string          `yaml:"maintainer,omitempty"`
	Arg         *ArgSpec         `yaml:"arg,omitempty"`
	HealthCheck *HealthCheckSpec `yaml:"healthcheck,omitempty"`
	Shell       []string         `yaml:"shell,omitempty"`
	OnBuild     *InstructionSpec `yaml:"onbuild,omitempty"`
}

// CopySpec describes a COPY instruction.
type CopySpec struct {
	Src   string `yaml:"src"`
	Dst   string `yaml:"dst"`
	From  string `yaml:"from,omitempty"`
	Chown string `yaml:"chown,omitempty"`
}

// AddSpec describes an ADD instruction.
type AddSpec struct {
	Src   string `yaml:"src"`
	Dst   string `yaml:"dst"`
	Chown string `yaml:"chown,omitempty"`
}

// ExposeSpec describes an EXPOSE instruction.
type ExposeSpec struct {
	Port  uint16 `yaml:"port"`
	Proto string `yaml:"proto,omitempty"`
}

// UserSpec describes a USER instruction.
type UserSpec struct {
	Name  string `yaml:"name"`
	Group string `yaml:"group,omitempty"`
}

// ArgSpec describes an ARG instruction.
type ArgSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"`
}

// HealthCheckSpec describes a HEALTHCHECK instruction. Durations use Go's
// duration syntax ("30s", "1m").
type HealthCheckSpec struct {
	None        bool     `yaml:"none,omitempty"`
	Cmd         []string `yaml:"cmd,omitempty"`
	Interval    string   `yaml:"interval,omitempty"`
	Timeout     string   `yaml:"timeout,omitempty"`
	StartPeriod string   `yaml:"startPeriod,omitempty"`
	Retries     int      `yaml:"retries,omitempty"`
}

// Load parses a build spec from YAML.
func Load(content []byte) (*Spec, error) {
	spec := &Spec{}
	if err := yaml.Unmarshal(content, spec); err != nil {
		return nil, dockerfile.WrapError(err)
	}
	if spec.From.Image == "" {
		return nil, errors.New("build spec is missing a base image")
	}
	return spec, nil
}

// Dockerfile builds the in-memory document described by the spec. Appending
// happens in list order, so a spec with two cmd entries fails with the same
// duplicate-singleton error a caller of the dockerfile package would get.
func (s *Spec) Dockerfile() (*dockerfile.Dockerfile, error) {
	file := dockerfile.From(dockerfile.BaseImage{
		Image:  s.From.Image,
		Tag:    s.From.Tag,
		Digest: s.From.Digest,
		As:     s.From.As,
	})

	for index, entry := range s.Instructions {
		instruction, err := entry.instruction()
		if err != nil {
			return nil, errors.Errorf("instruction %d: %s", index+1, err)
		}
		if err := file.Append(instruction); err != nil {
			// not rewrapped so the caller can still check the error code
			return nil, err
		}
	}

	return file, nil
}

// instruction returns the one instruction this entry describes, or an error
// when the entry describes none or several.
func (i InstructionSpec) instruction() (dockerfile.Instruction, error) {
	instructions := []dockerfile.Instruction{}

	if i.Comment != nil {
		instructions = append(instructions, dockerfile.Comment{Text: *i.Comment})
	}
	if i.Run != nil {
		instructions = append(instructions, dockerfile.Run{Params: i.Run})
	}
	if i.Copy != nil {
		instructions = append(instructions, dockerfile.Copy{
			Src:   i.Copy.Src,
			Dst:   i.Copy.Dst,
			From:  i.Copy.From,
			Chown: i.Copy.Chown,
		})
	}
	if i.Add != nil {
		instructions = append(instructions, dockerfile.Add{
			Src:   i.Add.Src,
			Dst:   i.Add.Dst,
			Chown: i.Add.Chown,
		})
	}
	if i.Expose != nil {
		instructions = append(instructions, dockerfile.Expose{Port: i.Expose.Port, Proto: i.Expose.Proto})
	}
	if i.Env != nil {
		instructions = append(instructions, dockerfile.Env{Pairs: envVars(i.Env)})
	}
	if i.Volume != nil {
		instructions = append(instructions, dockerfile.Volume{Paths: i.Volume})
	}
	if i.User != nil {
		instructions = append(instructions, dockerfile.User{Name: i.User.Name, Group: i.User.Group})
	}
	if i.WorkDir != nil {
		instructions = append(instructions, dockerfile.WorkDir{Path: *i.WorkDir})
	}
	if i.EntryPoint != nil {
		instructions = append(instructions, dockerfile.EntryPoint{Params: i.EntryPoint})
	}
	if i.Cmd != nil {
		instructions = append(instructions, dockerfile.Cmd{Params: i.Cmd})
	}
	if i.StopSignal != nil {
		instructions = append(instructions, dockerfile.StopSignal{Signal: *i.StopSignal})
	}
	if i.Label != nil {
		instructions = append(instructions, dockerfile.Label{Pairs: labelPairs(i.Label)})
	}
	if i.Maintainer != nil {
		instructions = append(instructions, dockerfile.Maintainer{Name: *i.Maintainer})
	}
	if i.Arg != nil {
		instructions = append(instructions, dockerfile.Arg{Name: i.Arg.Name, Value: i.Arg.Value})
	}
	if i.HealthCheck != nil {
		check, err := i.HealthCheck.healthCheck()
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, check)
	}
	if i.Shell != nil {
		instructions = append(instructions, dockerfile.Shell{Params: i.Shell})
	}
	if i.OnBuild != nil {
		inner, err := i.OnBuild.instruction()
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, dockerfile.OnBuild{Inner: inner})
	}

	switch len(instructions) {
	case 0:
		return nil, errors.New("entry does not describe any known instruction")
	case 1:
		return instructions[0], nil
	default:
		return nil, errors.Errorf("entry describes %d instructions, want exactly one", len(instructions))
	}
}

func (h HealthCheckSpec) healthCheck() (dockerfile.HealthCheck, error) {
	check := dockerfile.HealthCheck{
		None:    h.None,
		Cmd:     dockerfile.Cmd{Params: h.Cmd},
		Retries: h.Retries,
	}

	durations := []struct {
		value string
		field *time.Duration
	}{
		{h.Interval, &check.Interval},
		{h.Timeout, &check.Timeout},
		{h.StartPeriod, &check.StartPeriod},
	}
	for _, duration := range durations {
		if duration.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(duration.value)
		if err != nil {
			return dockerfile.HealthCheck{}, errors.Errorf("healthcheck: %s", err)
		}
		*duration.field = parsed
	}

	return check, nil
}

// envVars converts a YAML mapping to ordered pairs. MapSlice is what keeps
// the order the user wrote; a plain map would shuffle it.
func envVars(items yaml.MapSlice) []dockerfile.EnvVar {
	pairs := make([]dockerfile.EnvVar, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, dockerfile.EnvVar{
			Key:   fmt.Sprint(item.Key),
			Value: fmt.Sprint(item.Value),
		})
	}
	return pairs
}

func labelPairs(items yaml.MapSlice) []dockerfile.LabelPair {
	pairs := make([]dockerfile.LabelPair, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, dockerfile.LabelPair{
			Key:   fmt.Sprint(item.Key),
			Value: fmt.Sprint(item.Value),
		})
	}
	return pairs
}
