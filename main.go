package main

import "github.com/atim-dev/atim/internal/cli"

func main() {
	cli.Execute()
}
