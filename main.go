package main

import "github.com/nitrotools/nitropack/cmd"

func main() {
	cmd.Execute()
}
