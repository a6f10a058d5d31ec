// Command previewsim replays gesture scripts against the preview engine.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/preview/cmd/previewsim/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
