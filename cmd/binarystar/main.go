package main

import "github.com/signalsfoundry/binarystar-simulator/internal/cli"

func main() {
	cli.Execute()
}
