package main

import (
	"context"
	"os"

	"github.com/trufflesuite/vscode-ext-sub002/cmd"
)

func main() {
	if err := cmd.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
