package main

import "conquest/cmd"

func main() {
	cmd.Execute()
}
