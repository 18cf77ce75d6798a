// Rowan CLI - compile and run Rowan programs
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/rowan-lang/rowan/cache"
	"github.com/rowan-lang/rowan/compiler"
	"github.com/rowan-lang/rowan/manifest"
	"github.com/rowan-lang/rowan/pkg/ast"
	"github.com/rowan-lang/rowan/pkg/bytecode"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	interactive := flag.Bool("i", false, "Start interactive REPL")
	verbose := flag.Bool("v", false, "Verbose output")
	disasm := flag.Bool("disasm", false, "Print disassembly instead of running")
	trace := flag.Bool("trace", false, "Trace instruction execution")
	noCache := flag.Bool("no-cache", false, "Skip the compile cache")
	output := flag.String("o", "", "Compile to a .rnc artifact instead of running")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rowan [options] [file.rn]\n\n")
		fmt.Fprintf(os.Stderr, "Compiles and runs Rowan programs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rowan -i                 # Start REPL\n")
		fmt.Fprintf(os.Stderr, "  rowan prog.rn            # Compile and run prog.rn\n")
		fmt.Fprintf(os.Stderr, "  rowan -disasm prog.rn    # Show bytecode for prog.rn\n")
		fmt.Fprintf(os.Stderr, "  rowan -o prog.rnc prog.rn  # Compile to an artifact\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("rowan")

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m.Project.Name != "" {
		log.Infof("loaded manifest for %s from %s", m.Project.Name, m.Dir)
	}

	if *interactive {
		runRepl(m, log, *trace || m.VM.Trace)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	chunk, err := compileCached(string(source), m, log, *noCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *disasm {
		fmt.Print(chunk.DisassembleWithName(path))
		return
	}

	if *output != "" {
		if err := writeArtifact(chunk, *output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Infof("wrote %s", *output)
		return
	}

	vm := bytecode.NewVM()
	vm.Trace = *trace || m.VM.Trace
	if err := vm.Run(chunk); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if result := vm.LastPopped(); result != nil {
		fmt.Println(result.Inspect())
	}
}

// compileSource parses and compiles source text.
func compileSource(source string) (*bytecode.Chunk, error) {
	p := compiler.NewParser(source)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse error: %s", errs[0])
	}
	return compileProgram(program)
}

func compileProgram(program *ast.Program) (*bytecode.Chunk, error) {
	return bytecode.Compile(program)
}

// compileCached compiles source, consulting the manifest's compile cache
// when one is configured. Cache failures degrade to plain compilation.
func compileCached(source string, m *manifest.Manifest, log commonlog.Logger, noCache bool) (*bytecode.Chunk, error) {
	cachePath := m.CachePath()
	if noCache || cachePath == "" {
		return compileSource(source)
	}

	store, err := cache.Open(cachePath)
	if err != nil {
		log.Warningf("compile cache unavailable: %v", err)
		return compileSource(source)
	}
	defer store.Close()

	key := cache.Key(source)
	if data, err := store.Get(key); err == nil {
		if chunk, err := bytecode.UnmarshalChunk(data); err == nil {
			log.Debugf("cache hit for %s", key[:12])
			return chunk, nil
		}
		log.Warningf("discarding corrupt cache entry %s", key[:12])
	}

	chunk, err := compileSource(source)
	if err != nil {
		return nil, err
	}

	if data, err := bytecode.MarshalChunk(chunk); err == nil {
		if err := store.Put(key, data); err != nil {
			log.Warningf("cache store failed: %v", err)
		}
	}
	return chunk, nil
}
