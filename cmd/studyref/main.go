package main

import "github.com/scriptura/studyref/cmd"

func main() {
	cmd.Execute()
}
