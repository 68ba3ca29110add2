package main

import "passprove/cmd/passprove/cmd"

func main() {
	cmd.Execute()
}
