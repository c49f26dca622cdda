package main

import "github.com/mcoot/candyledger/internal/cli"

func main() {
	cli.Execute()
}
