package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/rowan-lang/rowan/manifest"
	"github.com/rowan-lang/rowan/pkg/bytecode"
)

// runRepl reads lines from stdin, compiling and running each one in a
// shared VM, printing the result of every expression.
func runRepl(m *manifest.Manifest, log commonlog.Logger, trace bool) {
	session := uuid.NewString()
	log.Infof("repl session %s", session)

	fmt.Printf("Rowan REPL (session %s)\n", session[:8])
	fmt.Println("Enter expressions, Ctrl-D to exit.")

	vm := bytecode.NewVM()
	vm.Trace = trace

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(m.Repl.Prompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		chunk, err := compileSource(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if err := vm.Run(chunk); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if result := vm.LastPopped(); result != nil {
			fmt.Println(result.Inspect())
		}
	}

	if err := scanner.Err(); err != nil {
		log.Errorf("repl input: %v", err)
	}
	fmt.Println()
}
