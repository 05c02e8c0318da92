// Command seed loads demo data. It is shorthand for "ems seed".
package main

import (
	"fmt"
	"os"

	"emsapi/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(append([]string{"seed"}, os.Args[1:]...))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
