package main

import "fitlog/cmd/client/cmd"

func main() {
	cmd.Execute()
}
