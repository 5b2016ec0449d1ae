package main

import "github.com/opsdash/india-ops/cmd"

func main() {
	cmd.Execute()
}
