package main

import "github.com/cdfisher/osrs-tools/internal/cli"

func main() {
	cli.Execute()
}
