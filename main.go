package main

import "github.com/notargets/continuity1d/cmd"

func main() {
	cmd.Execute()
}
