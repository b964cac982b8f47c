package main

import "github.com/bryanchriswhite/FocusHint/cmd/focushint/commands"

func main() {
	commands.Execute()
}
