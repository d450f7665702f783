package main

import (
	"fmt"
	"os"

	"github.com/arbiterhq/arbiter/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "arbiter:", err)
		os.Exit(1)
	}
}
