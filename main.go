package main

import "github.com/campusq/forum/cmd"

func main() {
	cmd.Execute()
}
