package main

import "github.com/iburimskiy/neuralbg/internal/cli"

func main() {
	cli.Execute()
}
