package main

import "slotwise/cmd"

func main() {
	cmd.Execute()
}
