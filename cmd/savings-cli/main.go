package main

import "savings-core/cmd/savings-cli/cmd"

func main() {
	cmd.Execute()
}
