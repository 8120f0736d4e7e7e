package main

import "github.com/erinmikailstaples/Agent-Adventures/internal/cli"

func main() {
	cli.Execute()
}
