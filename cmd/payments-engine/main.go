// Command payments-engine replays a CSV transaction log (or stdin) through
// the event-sourced account ledger and prints one balance snapshot per
// client to stdout.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
