package dockerfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Instruction is a single directive in a Dockerfile. Each implementation is a
// plain immutable record: String returns the instruction's full text form
// (without a trailing newline) and Keyword returns the uppercase token the
// instruction starts with. No validation happens here beyond what the field
// types themselves impose; we trust the caller to supply sensible arguments
// because the build tool consuming the output is the real authority on them.
type Instruction interface {
	fmt.Stringer
	Keyword() string
}

// BaseImage is the FROM instruction. Tag and Digest are independently
// optional, as is the AS alias used to name a build stage for later
// COPY --from references.
type BaseImage struct {
	Image  string
	Tag    string
	Digest string
	As     string
}

func (b BaseImage) Keyword() string { return KeywordFrom }

func (b BaseImage) String() string {
	builder := strings.Builder{}
	builder.WriteString(KeywordFrom + " " + b.Image)
	if b.Tag != "" {
		builder.WriteString(":" + b.Tag)
	}
	if b.Digest != "" {
		builder.WriteString("@" + b.Digest)
	}
	if b.As != "" {
		builder.WriteString(" AS " + b.As)
	}
	return builder.String()
}

// Comment is a '# ...' line. Not an instruction as far as the build tool is
// concerned, but we treat it as one so it can sit anywhere in the sequence.
type Comment struct {
	Text string
}

func (c Comment) Keyword() string { return KeywordComment }

func (c Comment) String() string {
	return "# " + c.Text
}

// Run is the RUN instruction in shell form. Params are joined with single
// spaces verbatim: no shell escaping is applied, so the caller supplies
// tokens that are already appropriate for the shell.
type Run struct {
	Params []string
}

func (r Run) Keyword() string { return KeywordRun }

func (r Run) String() string {
	return KeywordRun + " " + strings.Join(r.Params, " ")
}

// Copy is the COPY instruction. From references a named build stage and Chown
// is the ownership string passed through to --chown; both are optional and
// always printed in from-then-chown order.
type Copy struct {
	Src   string
	Dst   string
	From  string
	Chown string
}

func (c Copy) Keyword() string { return KeywordCopy }

func (c Copy) String() string {
	parts := []string{KeywordCopy}
	if c.From != "" {
		parts = append(parts, "--from="+c.From)
	}
	if c.Chown != "" {
		parts = append(parts, "--chown="+c.Chown)
	}
	parts = append(parts, c.Src, c.Dst)
	return strings.Join(parts, " ")
}

// Add is the ADD instruction.
type Add struct {
	Src   string
	Dst   string
	Chown string
}

func (a Add) Keyword() string { return KeywordAdd }

func (a Add) String() string {
	parts := []string{KeywordAdd}
	if a.Chown != "" {
		parts = append(parts, "--chown="+a.Chown)
	}
	parts = append(parts, a.Src, a.Dst)
	return strings.Join(parts, " ")
}

// Expose is the EXPOSE instruction.
type Expose struct {
	Port  uint16
	Proto string
}

func (e Expose) Keyword() string { return KeywordExpose }

func (e Expose) String() string {
	if e.Proto != "" {
		return fmt.Sprintf("%s %d/%s", KeywordExpose, e.Port, e.Proto)
	}
	return fmt.Sprintf("%s %d", KeywordExpose, e.Port)
}

// EnvVar is one key=value pair of an ENV instruction.
type EnvVar struct {
	Key   string
	Value string
}

// Env is the ENV instruction. Pairs render in the order given and duplicate
// keys are deliberately allowed: the Dockerfile syntax itself permits them
// (last one wins at build time) so we don't second-guess the caller.
type Env struct {
	Pairs []EnvVar
}

func (e Env) Keyword() string { return KeywordEnv }

func (e Env) String() string {
	pairs := lo.Map(e.Pairs, func(pair EnvVar, _ int) string {
		return pair.Key + "=" + pair.Value
	})
	return KeywordEnv + " " + strings.Join(pairs, " ")
}

// Volume is the VOLUME instruction in exec (JSON array) form.
type Volume struct {
	Paths []string
}

func (v Volume) Keyword() string { return KeywordVolume }

func (v Volume) String() string {
	return KeywordVolume + " " + execForm(v.Paths)
}

// User is the USER instruction.
type User struct {
	Name  string
	Group string
}

func (u User) Keyword() string { return KeywordUser }

func (u User) String() string {
	if u.Group != "" {
		return KeywordUser + " " + u.Name + ":" + u.Group
	}
	return KeywordUser + " " + u.Name
}

// WorkDir is the WORKDIR instruction.
type WorkDir struct {
	Path string
}

func (w WorkDir) Keyword() string { return KeywordWorkdir }

func (w WorkDir) String() string {
	return KeywordWorkdir + " " + w.Path
}

// EntryPoint is the ENTRYPOINT instruction in exec form. At most one may
// appear per Dockerfile; the document builder enforces that.
type EntryPoint struct {
	Params []string
}

func (e EntryPoint) Keyword() string { return KeywordEntrypoint }

func (e EntryPoint) String() string {
	return KeywordEntrypoint + " " + execForm(e.Params)
}

// Cmd is the CMD instruction in exec form. Like EntryPoint, at most one may
// appear per Dockerfile.
type Cmd struct {
	Params []string
}

func (c Cmd) Keyword() string { return KeywordCmd }

func (c Cmd) String() string {
	return KeywordCmd + " " + execForm(c.Params)
}

// StopSignal is the STOPSIGNAL instruction. Signal can be a name like SIGTERM
// or a number.
type StopSignal struct {
	Signal string
}

func (s StopSignal) Keyword() string { return KeywordStopSignal }

func (s StopSignal) String() string {
	return KeywordStopSignal + " " + s.Signal
}

// LabelPair is one key="value" pair of a LABEL instruction.
type LabelPair struct {
	Key   string
	Value string
}

// Label is the LABEL instruction. Values are double-quoted because label
// values routinely contain spaces; newlines inside a value are escaped with a
// backslash so the instruction stays a single logical line. Pairs render in
// the order given and duplicate keys are allowed, same as Env.
type Label struct {
	Pairs []LabelPair
}

func (l Label) Keyword() string { return KeywordLabel }

func (l Label) String() string {
	pairs := lo.Map(l.Pairs, func(pair LabelPair, _ int) string {
		value := strings.ReplaceAll(pair.Value, "\n", "\\\n")
		return pair.Key + `="` + value + `"`
	})
	return KeywordLabel + " " + strings.Join(pairs, " ")
}

// Maintainer is the MAINTAINER instruction.
//
// Deprecated: the Dockerfile syntax deprecates MAINTAINER in favor of a LABEL
// with a "maintainer" key. It's kept here because existing Dockerfiles still
// use it and we only promise to emit what we're told.
type Maintainer struct {
	Name string
}

func (m Maintainer) Keyword() string { return KeywordMaintainer }

func (m Maintainer) String() string {
	return KeywordMaintainer + " " + m.Name
}

// Arg is the ARG instruction. An empty Value renders the bare `ARG <name>`
// form, which means an ARG with an explicitly empty default cannot be
// expressed; nobody has wanted one yet.
type Arg struct {
	Name  string
	Value string
}

func (a Arg) Keyword() string { return KeywordArg }

func (a Arg) String() string {
	if a.Value != "" {
		return KeywordArg + " " + a.Name + "=" + a.Value
	}
	return KeywordArg + " " + a.Name
}

// HealthCheck is the HEALTHCHECK instruction. The zero value of each option
// means the corresponding flag is omitted so the build tool's defaults apply.
// Setting None renders `HEALTHCHECK NONE`, which disables any healthcheck
// inherited from the base image, and ignores the other fields.
type HealthCheck struct {
	None        bool
	Cmd         Cmd
	Interval    time.Duration
	Timeout     time.Duration
	StartPeriod time.Duration
	Retries     int
}

func (h HealthCheck) Keyword() string { return KeywordHealthCheck }

func (h HealthCheck) String() string {
	if h.None {
		return KeywordHealthCheck + " NONE"
	}
	builder := strings.Builder{}
	builder.WriteString(KeywordHealthCheck + " ")
	if h.Interval != 0 {
		builder.WriteString(fmt.Sprintf("--interval=%s ", h.Interval))
	}
	if h.Timeout != 0 {
		builder.WriteString(fmt.Sprintf("--timeout=%s ", h.Timeout))
	}
	if h.StartPeriod != 0 {
		builder.WriteString(fmt.Sprintf("--start-period=%s ", h.StartPeriod))
	}
	if h.Retries != 0 {
		builder.WriteString(fmt.Sprintf("--retries=%d ", h.Retries))
	}
	builder.WriteString(h.Cmd.String())
	return builder.String()
}

// Shell is the SHELL instruction in exec form.
type Shell struct {
	Params []string
}

func (s Shell) Keyword() string { return KeywordShell }

func (s Shell) String() string {
	return KeywordShell + " " + execForm(s.Params)
}

// OnBuild wraps another instruction to run when the image is used as a base
// for some other build. The wrapped instruction keeps its own formatting.
type OnBuild struct {
	Inner Instruction
}

func (o OnBuild) Keyword() string { return KeywordOnbuild }

func (o OnBuild) String() string {
	return KeywordOnbuild + " " + o.Inner.String()
}

// execForm renders params as a JSON-style array: ["a", "b"]. Elements are
// wrapped in plain double quotes without escaping, so a param containing a
// double quote is the caller's problem, matching how permissive the rest of
// this package is about argument contents.
func execForm(params []string) string {
	quoted := lo.Map(params, func(param string, _ int) string {
		return `"` + param + `"`
	})
	return "[" + strings.Join(quoted, ", ") + "]"
}
