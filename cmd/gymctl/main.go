// Command gymctl is the operator CLI for the branch API: listing, export and
// bulk import of branches from a spreadsheet.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
