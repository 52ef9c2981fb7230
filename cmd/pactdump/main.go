// Command pactdump inspects a compiled Pact contract blob: its data table,
// its bytecode listing, and optionally a raw hex dump.
//
// Usage:
//
//	pactdump [--hex] contract.pact
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/chronos-tachyon/go-pact/pactvm"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pactdump: error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("pactdump", pflag.ContinueOnError)
	hex := fs.Bool("hex", false, "also print a hex dump of the raw blob")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one contract file, got %d", fs.NArg())
	}

	blob, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	c, err := pactvm.DecodeContract(blob)
	if err != nil {
		return err
	}

	if *hex {
		fmt.Print(pactvm.HexDump(blob))
		fmt.Println()
	}

	_, err = c.Disassemble(os.Stdout)
	return err
}
