package dockerfile

// Keywords for the set of Dockerfile instructions we know how to emit.
// These are uppercase because that's how they appear in the output.
const (
	KeywordFrom        = "FROM"
	KeywordRun         = "RUN"
	KeywordCmd         = "CMD"
	KeywordLabel       = "LABEL"
	KeywordMaintainer  = "MAINTAINER"
	KeywordExpose      = "EXPOSE"
	KeywordEnv         = "ENV"
	KeywordAdd         = "ADD"
	KeywordCopy        = "COPY"
	KeywordEntrypoint  = "ENTRYPOINT"
	KeywordVolume      = "VOLUME"
	KeywordUser        = "USER"
	KeywordWorkdir     = "WORKDIR"
	KeywordArg         = "ARG"
	KeywordOnbuild     = "ONBUILD"
	KeywordStopSignal  = "STOPSIGNAL"
	KeywordHealthCheck = "HEALTHCHECK"
	KeywordShell       = "SHELL"

	// KeywordComment is not a real instruction keyword: comments have no
	// keyword in the Dockerfile syntax, so we use the comment marker itself.
	KeywordComment = "#"
)
