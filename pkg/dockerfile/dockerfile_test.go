package dockerfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRenderStartsWithBaseImage is a function.
func TestRenderStartsWithBaseImage(t *testing.T) {
	file := From(BaseImage{Image: "alpine", Tag: "3.20"})
	assert.EqualValues(t, "FROM alpine:3.20\n", file.Render())
}

// TestRenderExample is the worked example from the package documentation.
func TestRenderExample(t *testing.T) {
	file := From(BaseImage{Image: "nginx", Tag: "latest"}).
		Comment("open port for server").
		Expose(80).
		Copy(Copy{Src: ".", Dst: "."})
	assert.NoError(t, file.Cmd("echo", "Hello from container!"))

	expected := `FROM nginx:latest

# open port for server
EXPOSE 80
COPY . .

CMD ["echo", "Hello from container!"]
`
	assert.EqualValues(t, expected, file.Render())
}

// TestRenderPreservesInsertionOrder is a function.
func TestRenderPreservesInsertionOrder(t *testing.T) {
	file := From(BaseImage{Image: "golang", Tag: "1.24"}).
		WorkDir("/app").
		Run("go", "mod", "download").
		Env(EnvVar{"CGO_ENABLED", "0"}).
		Run("go", "build", "-o", "/app/main", ".").
		WorkDir("/srv")

	expected := `FROM golang:1.24
WORKDIR /app
RUN go mod download
ENV CGO_ENABLED=0
RUN go build -o /app/main .
WORKDIR /srv
`
	assert.EqualValues(t, expected, file.Render())
}

// TestRenderIsIdempotent is a function.
func TestRenderIsIdempotent(t *testing.T) {
	file := From(BaseImage{Image: "alpine"}).
		Comment("nothing up my sleeve").
		Volume("/data")
	assert.NoError(t, file.EntryPoint("server"))

	first := file.Render()
	second := file.Render()
	assert.EqualValues(t, first, second)
}

// TestDuplicateEntryPointRejected is a function.
func TestDuplicateEntryPointRejected(t *testing.T) {
	file := From(BaseImage{Image: "alpine"})
	assert.NoError(t, file.EntryPoint("first"))

	before := file.Render()
	err := file.EntryPoint("second")
	assert.Error(t, err)
	assert.True(t, HasErrorCode(err, DuplicateSingleton))

	// a rejected append must leave the document untouched
	assert.EqualValues(t, before, file.Render())
}

// TestDuplicateCmdRejected is a function.
func TestDuplicateCmdRejected(t *testing.T) {
	file := From(BaseImage{Image: "alpine"})
	assert.NoError(t, file.Cmd("echo", "one"))

	err := file.Cmd("echo", "two")
	assert.Error(t, err)
	assert.True(t, HasErrorCode(err, DuplicateSingleton))

	expected := `FROM alpine

CMD ["echo", "one"]
`
	assert.EqualValues(t, expected, file.Render())
}

// TestEntryPointAndCmdTogether is a function.
func TestEntryPointAndCmdTogether(t *testing.T) {
	file := From(BaseImage{Image: "alpine"})
	assert.NoError(t, file.EntryPoint("server"))
	assert.NoError(t, file.Cmd("--help"))

	expected := `FROM alpine

ENTRYPOINT ["server"]

CMD ["--help"]
`
	assert.EqualValues(t, expected, file.Render())
}

// TestRejectedAppendLeavesDocumentUntouched is a function.
func TestRejectedAppendLeavesDocumentUntouched(t *testing.T) {
	file := From(BaseImage{Image: "alpine"})
	err := file.Append(
		Cmd{Params: []string{"echo", "one"}},
		WorkDir{Path: "/app"},
		Cmd{Params: []string{"echo", "two"}},
	)
	assert.Error(t, err)
	assert.True(t, HasErrorCode(err, DuplicateSingleton))

	// the failed call appends nothing, not even the instructions before the
	// offending one
	assert.EqualValues(t, "FROM alpine\n", file.Render())

	// and the document is still free to take a CMD
	assert.NoError(t, file.Cmd("echo", "three"))
}

// TestOnBuildCmdDoesNotCountAsSingleton is a function.
func TestOnBuildCmdDoesNotCountAsSingleton(t *testing.T) {
	file := From(BaseImage{Image: "alpine"}).
		OnBuild(Cmd{Params: []string{"echo", "from child build"}})
	assert.NoError(t, file.Cmd("echo", "from this build"))

	expected := `FROM alpine
ONBUILD CMD ["echo", "from child build"]

CMD ["echo", "from this build"]
`
	assert.EqualValues(t, expected, file.Render())
}

// TestMultiStageBuild is a function.
func TestMultiStageBuild(t *testing.T) {
	file := From(BaseImage{Image: "golang", Tag: "1.24-alpine", As: "builder"}).
		WorkDir("/app").
		Copy(Copy{Src: ".", Dst: "."}).
		Run("go", "build", "-o", "/app/main", ".")
	err := file.Append(
		BaseImage{Image: "alpine", Tag: "latest"},
		Copy{Src: "/app/main", Dst: ".", From: "builder"},
	)
	assert.NoError(t, err)
	assert.NoError(t, file.Cmd("./main"))

	expected := `FROM golang:1.24-alpine AS builder
WORKDIR /app
COPY . .
RUN go build -o /app/main .
FROM alpine:latest
COPY --from=builder /app/main .

CMD ["./main"]
`
	assert.EqualValues(t, expected, file.Render())
}

// TestFullKitchenSink exercises every instruction kind in one document.
func TestFullKitchenSink(t *testing.T) {
	file := From(BaseImage{Image: "debian", Tag: "bookworm"}).
		Maintainer("lead gopher").
		Comment("Hello, world!").
		Run("/bin/bash", "-c", "echo").
		Label(LabelPair{"key", "value"}).
		Expose(80).
		Env(EnvVar{"GO", "1.24"}).
		Add(Add{Src: "/var/run", Dst: "/home"}).
		Copy(Copy{Src: "/var/run", Dst: "/home"}).
		Volume("/var/run", "/var/www").
		User(User{Name: "gopher"}).
		WorkDir("/home/gopher").
		Arg("build", "yes").
		StopSignal("SIGKILL").
		HealthCheck(HealthCheck{None: true}).
		Shell("/bin/bash", "-c").
		OnBuild(Cmd{Params: []string{"echo", "This is the ONBUILD command"}})
	assert.NoError(t, file.EntryPoint("go", "vet"))
	assert.NoError(t, file.Cmd("echo", "Hi!"))

	expected := `FROM debian:bookworm
MAINTAINER lead gopher

# Hello, world!
RUN /bin/bash -c echo
LABEL key="value"
EXPOSE 80
ENV GO=1.24
ADD /var/run /home
COPY /var/run /home
VOLUME ["/var/run", "/var/www"]
USER gopher
WORKDIR /home/gopher
ARG build=yes
STOPSIGNAL SIGKILL
HEALTHCHECK NONE
SHELL ["/bin/bash", "-c"]
ONBUILD CMD ["echo", "This is the ONBUILD command"]

ENTRYPOINT ["go", "vet"]

CMD ["echo", "Hi!"]
`
	assert.EqualValues(t, expected, file.Render())
}

// TestInstructionsReturnsACopy is a function.
func TestInstructionsReturnsACopy(t *testing.T) {
	file := From(BaseImage{Image: "alpine"}).WorkDir("/app")

	instructions := file.Instructions()
	assert.Len(t, instructions, 2)

	instructions[1] = WorkDir{Path: "/elsewhere"}
	assert.EqualValues(t, "FROM alpine\nWORKDIR /app\n", file.Render())
}

// TestWriteTo is a function.
func TestWriteTo(t *testing.T) {
	file := From(BaseImage{Image: "alpine"}).WorkDir("/app")

	buf := bytes.Buffer{}
	n, err := file.WriteTo(&buf)
	assert.NoError(t, err)
	assert.EqualValues(t, int64(buf.Len()), n)
	assert.EqualValues(t, file.Render(), buf.String())
}

// TestHasErrorCode is a function.
func TestHasErrorCode(t *testing.T) {
	file := From(BaseImage{Image: "alpine"})
	assert.NoError(t, file.Cmd("echo"))
	err := file.Cmd("echo")

	assert.True(t, HasErrorCode(err, DuplicateSingleton))
	assert.False(t, HasErrorCode(err, DuplicateSingleton+1))
	assert.False(t, HasErrorCode(WrapError(assert.AnError), DuplicateSingleton))
}

// TestWrapError is a function.
func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil))
	assert.Error(t, WrapError(assert.AnError))
}
