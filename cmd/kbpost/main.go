package main

import "github.com/OpenTraceLab/kbpost/cmd/kbpost/cmd"

func main() {
	cmd.Execute()
}
