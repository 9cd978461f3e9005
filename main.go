package main

import "github.com/f1ledcircuit/replay-engine-go/cmd"

func main() {
	cmd.Execute()
}
