package main

import "github.com/cursortools/cursorctl/cmd"

func main() {
	cmd.Execute()
}
