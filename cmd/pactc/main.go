// Command pactc compiles a Pact surface-language document into a contract
// blob.
//
// Usage:
//
//	pactc [--out contract.pact] [--dump] source.pact.txt
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/chronos-tachyon/go-pact/compiler"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pactc: error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("pactc", pflag.ContinueOnError)
	out := fs.StringP("out", "o", "", "write the contract blob to this file (default: stdout)")
	dump := fs.Bool("dump", false, "print the compiled contract's disassembly to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one source file, got %d", fs.NArg())
	}

	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	c, err := compiler.Compile(string(src))
	if err != nil {
		return fmt.Errorf("%s:%v", fs.Arg(0), err)
	}

	if *dump {
		if _, err := c.Disassemble(os.Stderr); err != nil {
			return err
		}
	}

	blob := c.Encode()
	if *out == "" {
		_, err := os.Stdout.Write(blob)
		return err
	}
	return os.WriteFile(*out, blob, 0o644)
}
