package main

import (
	"fmt"
	"os"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
