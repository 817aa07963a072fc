package main

import "cutlist/cmd"

func main() {
	cmd.Execute()
}
