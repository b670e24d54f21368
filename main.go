package main

import "github.com/sw33tLie/freedrops/cmd"

func main() {
	cmd.Execute()
}
