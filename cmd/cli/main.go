package main

import (
	"github.com/aiscm/aictl/pkg/cli"
)

func main() {
	cli.Execute()
}
