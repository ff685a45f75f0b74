package main

import "github.com/coastwatch/buoyant/internal/cli"

func main() {
	cli.Execute()
}
