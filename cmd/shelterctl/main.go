package main

import "shelter-catalog/cmd/shelterctl/cmd"

func main() {
	cmd.Execute()
}
