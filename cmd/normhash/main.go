package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/vvka-141/normhash/internal/cli"
	"github.com/vvka-141/normhash/pkg/normhash"
)

// panicEnv makes run panic before any work, to exercise the recovery path.
const panicEnv = "NORMHASH_TEST_PANIC"

func main() {
	os.Exit(run(os.Stderr))
}

// run executes the CLI and returns the process exit code. A panic is
// reported on stderr with its stack and mapped to normhash.ExitPanic.
func run(stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "panic: %v\n%s\n", r, debug.Stack())
			code = normhash.ExitPanic
		}
	}()

	if os.Getenv(panicEnv) == "1" {
		panic("intentional test panic")
	}

	return normhash.ExitCodeForError(cli.Execute())
}
