package main

import (
	"github.com/rustyeddy/hedger/internal/cli"
)

func main() {
	cli.Execute()
}
