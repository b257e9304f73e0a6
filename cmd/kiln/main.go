package main

import "kiln/internal/cmd"

func main() {
	cmd.Execute()
}
