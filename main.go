// file: main.go
// version: 1.0.0
// guid: 8b1e4c27-3d5a-4f60-9e72-c4a1b5d6e7f8

package main

import (
	"fmt"
	"os"

	"github.com/acikyardim/yardim-paneli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
