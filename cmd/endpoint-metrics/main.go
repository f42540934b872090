package main

import (
	"fmt"
	"os"

	"github.com/inferenceops/endpoint-metrics/cmd/endpoint-metrics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
