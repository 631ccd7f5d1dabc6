package main

import "github.com/mkoskinen/inviteboard/internal/cli"

func main() {
	cli.Execute()
}
