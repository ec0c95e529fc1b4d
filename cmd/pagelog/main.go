package main

import "go.pagelog/internal/cli"

func main() {
	cli.Execute()
}
