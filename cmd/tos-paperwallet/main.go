// tos-paperwallet creates and restores TOS paper wallets.
//
// Usage:
//
//	tos-paperwallet generate [--count n] [--paper] [--qr]   New wallets
//	tos-paperwallet restore [--words "..."]                 Restore from seed phrase
//	tos-paperwallet from-key [--key hex]                    Restore from private key
//	tos-paperwallet address <addr>                          Inspect an address
//	tos-paperwallet verify [--words "..."] [--address a]    Check a seed phrase
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
