package main

import (
	"github.com/cloudbench/gcsbench/internal/cli"
)

// main starts the gcsbench CLI by delegating to the cobra root command.
func main() {
	cli.Execute()
}
