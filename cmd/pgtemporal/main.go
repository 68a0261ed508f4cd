// Command pgtemporal parses PostgreSQL temporal and range values and renders
// them in another output style.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := BuildCLIOptions().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
