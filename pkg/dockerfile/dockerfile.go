package dockerfile

import (
	"io"
	"strings"
)

// Dockerfile is an ordered, append-only sequence of instructions, seeded with
// a FROM instruction and rendered in insertion order. Instructions are only
// ever appended: there's no removal or reordering, so what you append is
// exactly what comes out of Render, line for line.
//
//	file := dockerfile.From(dockerfile.BaseImage{Image: "nginx", Tag: "latest"}).
//		Comment("open port for server").
//		Expose(80).
//		Copy(dockerfile.Copy{Src: ".", Dst: "."})
//	if err := file.Cmd("echo", "Hello from container!"); err != nil {
//		return err
//	}
//	// the caller owns I/O: write file.Render() wherever it needs to go
//
// A Dockerfile is not safe for concurrent use; build one per goroutine if you
// need several at once.
type Dockerfile struct {
	instructions []Instruction

	// cheaper than scanning the sequence on every append
	hasEntryPoint bool
	hasCmd        bool
}

// From returns a new Dockerfile whose first instruction is the given FROM.
// Every Dockerfile starts this way; there's no way to build one without a
// base image.
func From(base BaseImage) *Dockerfile {
	return &Dockerfile{instructions: []Instruction{base}}
}

// Append adds instructions to the end of the sequence. It fails with a
// DuplicateSingleton error when the call would leave the document with a
// second ENTRYPOINT or a second CMD. A failed call appends nothing, so the
// caller can drop the duplicate and carry on with the document as it was.
func (d *Dockerfile) Append(instructions ...Instruction) error {
	hasEntryPoint := d.hasEntryPoint
	hasCmd := d.hasCmd
	for _, instruction := range instructions {
		switch instruction.Keyword() {
		case KeywordEntrypoint:
			if hasEntryPoint {
				return duplicateSingletonError(KeywordEntrypoint)
			}
			hasEntryPoint = true
		case KeywordCmd:
			if hasCmd {
				return duplicateSingletonError(KeywordCmd)
			}
			hasCmd = true
		}
	}

	d.hasEntryPoint = hasEntryPoint
	d.hasCmd = hasCmd
	d.instructions = append(d.instructions, instructions...)
	return nil
}

// Instructions returns a copy of the instruction sequence, mostly for callers
// that want to inspect what they've built up so far.
func (d *Dockerfile) Instructions() []Instruction {
	instructions := make([]Instruction, len(d.instructions))
	copy(instructions, d.instructions)
	return instructions
}

func (d *Dockerfile) appendInstruction(instruction Instruction) *Dockerfile {
	// only the chainable (non-singleton) kinds come through here, so Append
	// cannot fail
	_ = d.Append(instruction)
	return d
}

// Comment adds a '# ...' line.
func (d *Dockerfile) Comment(text string) *Dockerfile {
	return d.appendInstruction(Comment{Text: text})
}

// Run adds a shell-form RUN instruction.
func (d *Dockerfile) Run(params ...string) *Dockerfile {
	return d.appendInstruction(Run{Params: params})
}

// Copy adds a COPY instruction.
func (d *Dockerfile) Copy(copy Copy) *Dockerfile {
	return d.appendInstruction(copy)
}

// Add adds an ADD instruction.
func (d *Dockerfile) Add(add Add) *Dockerfile {
	return d.appendInstruction(add)
}

// Expose adds an EXPOSE instruction for the given port. To set a protocol,
// append an Expose record directly.
func (d *Dockerfile) Expose(port uint16) *Dockerfile {
	return d.appendInstruction(Expose{Port: port})
}

// Env adds an ENV instruction with the given pairs, in the given order.
func (d *Dockerfile) Env(pairs ...EnvVar) *Dockerfile {
	return d.appendInstruction(Env{Pairs: pairs})
}

// Volume adds a VOLUME instruction.
func (d *Dockerfile) Volume(paths ...string) *Dockerfile {
	return d.appendInstruction(Volume{Paths: paths})
}

// User adds a USER instruction.
func (d *Dockerfile) User(user User) *Dockerfile {
	return d.appendInstruction(user)
}

// WorkDir adds a WORKDIR instruction.
func (d *Dockerfile) WorkDir(path string) *Dockerfile {
	return d.appendInstruction(WorkDir{Path: path})
}

// StopSignal adds a STOPSIGNAL instruction.
func (d *Dockerfile) StopSignal(signal string) *Dockerfile {
	return d.appendInstruction(StopSignal{Signal: signal})
}

// Label adds a LABEL instruction with the given pairs, in the given order.
func (d *Dockerfile) Label(pairs ...LabelPair) *Dockerfile {
	return d.appendInstruction(Label{Pairs: pairs})
}

// Maintainer adds a MAINTAINER instruction.
//
// Deprecated: use Label with a "maintainer" key instead.
func (d *Dockerfile) Maintainer(name string) *Dockerfile {
	return d.appendInstruction(Maintainer{Name: name})
}

// Arg adds an ARG instruction. Pass an empty value for the bare `ARG <name>`
// form.
func (d *Dockerfile) Arg(name, value string) *Dockerfile {
	return d.appendInstruction(Arg{Name: name, Value: value})
}

// HealthCheck adds a HEALTHCHECK instruction.
func (d *Dockerfile) HealthCheck(check HealthCheck) *Dockerfile {
	return d.appendInstruction(check)
}

// Shell adds a SHELL instruction.
func (d *Dockerfile) Shell(params ...string) *Dockerfile {
	return d.appendInstruction(Shell{Params: params})
}

// OnBuild adds an ONBUILD instruction wrapping the given instruction.
func (d *Dockerfile) OnBuild(inner Instruction) *Dockerfile {
	return d.appendInstruction(OnBuild{Inner: inner})
}

// EntryPoint adds an exec-form ENTRYPOINT instruction. It fails if the
// Dockerfile already has one: silently allowing two would either mislead the
// reader or mask a caller bug, so we fail fast instead.
func (d *Dockerfile) EntryPoint(params ...string) error {
	return d.Append(EntryPoint{Params: params})
}

// Cmd adds an exec-form CMD instruction, failing if one already exists.
func (d *Dockerfile) Cmd(params ...string) error {
	return d.Append(Cmd{Params: params})
}

// blankLineBefore reports whether instructions with this keyword get a blank
// line in front of them when rendered. This is a readability preference
// mirroring how people lay out Dockerfiles by hand, not anything the syntax
// requires.
func blankLineBefore(keyword string) bool {
	switch keyword {
	case KeywordComment, KeywordEntrypoint, KeywordCmd:
		return true
	default:
		return false
	}
}

// Render returns the full text of the Dockerfile: one block per instruction
// in insertion order, each terminated by a newline. Rendering doesn't touch
// the document, so calling it twice yields identical output and the document
// stays usable afterwards.
func (d *Dockerfile) Render() string {
	builder := strings.Builder{}
	for i, instruction := range d.instructions {
		if i > 0 && blankLineBefore(instruction.Keyword()) {
			builder.WriteByte('\n')
		}
		builder.WriteString(instruction.String())
		builder.WriteByte('\n')
	}
	return builder.String()
}

func (d *Dockerfile) String() string {
	return d.Render()
}

// WriteTo renders the Dockerfile into w, satisfying io.WriterTo so a document
// can be handed straight to a file or any other sink.
func (d *Dockerfile) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Render())
	return int64(n), err
}
