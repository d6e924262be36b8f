// lc-wrapped presents a year of LeetCode statistics as a full-screen
// sequence of slides in the terminal.
//
// Usage:
//
//	lc-wrapped [username] [flags]
//	lc-wrapped export <username>
//	lc-wrapped palette
//	lc-wrapped version
package main

import (
	"fmt"
	"os"

	"gitlab.com/tinyland/lab/lc-wrapped/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lc-wrapped: %v\n", err)
		os.Exit(1)
	}
}
