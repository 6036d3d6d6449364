package main

import "tspatch/internal/cli"

func main() {
	cli.Execute()
}
