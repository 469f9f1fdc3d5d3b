package main

import (
	"os"

	"github.com/dotnet-in-ue/nativebinder/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
