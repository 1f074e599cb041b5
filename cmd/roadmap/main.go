package main

import "github.com/DrSkyle/roadmap/cmd/roadmap/commands"

func main() {
	commands.Execute()
}
