package spec

// Example returns the build spec printed by `dockerfile-gen --example`, as a
// starting point for writing your own.
func Example() Spec {
	comment := "open port for server"
	return Spec{
		From: FromSpec{Image: "nginx", Tag: "latest"},
		Instructions: []InstructionSpec{
			{Comment: &comment},
			{Expose: &ExposeSpec{Port: 80}},
			{Copy: &CopySpec{Src: ".", Dst: "."}},
			{Cmd: []string{"echo", "Hello from container!"}},
		},
	}
}
