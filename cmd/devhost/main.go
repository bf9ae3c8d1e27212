package main

import "devhost/internal/cli"

func main() {
	cli.Execute()
}
