package main

import (
	"os"

	"github.com/scan-io-git/kani-report/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
