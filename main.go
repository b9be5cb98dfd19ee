package main

import "agencydash/cmd"

func main() {
	cmd.Execute()
}
