package main

import "github.com/iksnae/blueprint/cmd"

func main() {
	cmd.Execute()
}
