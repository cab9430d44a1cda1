package domain

// Invocation describes one external toolchain command. The orchestrator
// computes the argument vector; actually running the compiler is delegated
// to the shell adapter.
type Invocation struct {
	// Stage names the pipeline step this invocation implements, for error
	// messages and progress reporting (e.g. "configure", "compile").
	Stage string

	Dir  string
	Name string
	Args []string

	// Env entries override the inherited process environment.
	Env map[string]string
}
