package main

import "rosync/internal/cli"

func main() {
	cli.Execute()
}
