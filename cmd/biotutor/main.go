package main

import "github.com/diogo/biotutor/internal/commands"

func main() {
	commands.Execute()
}
