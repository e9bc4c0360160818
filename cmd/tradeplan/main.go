package main

import "github.com/rustyeddy/tradeplan/internal/cli"

func main() {
	cli.Execute()
}
