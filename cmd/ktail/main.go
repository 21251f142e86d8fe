package main

import (
	"github.com/charliek/ktail/internal/cli"
)

func main() {
	cli.Execute()
}
