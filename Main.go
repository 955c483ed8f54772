package main

import "Dealership/cmd"

func main() {
	cmd.Execute()
}
