package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pterm/pterm"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
