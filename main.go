package main

import "contentdl/cmd"

func main() {
	cmd.Execute()
}
