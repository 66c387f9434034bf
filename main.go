package main

import "recipebox/cmd"

func main() {
	cmd.Execute()
}
