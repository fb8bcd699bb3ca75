package main

import (
	"fmt"
	"io"

	"github.com/swenson/guicelint/loader"
	"github.com/swenson/guicelint/report"
	"github.com/swenson/guicelint/resolver"
	"github.com/swenson/guicelint/trace"
)

const version = "guicelint 1.0"

const usage = `Usage: guicelint <archive-path>
where options include:
    -help       print this message and exit
    -version    print version information and exit
`

// run holds all of the CLI's decision logic, kept separate from main so
// it can be driven by tests against in-memory stdout/stderr rather than
// the process's own.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	for _, a := range args[1:] {
		switch a {
		case "-help", "--help", "-h":
			fmt.Fprint(stderr, usage)
			return 0
		case "-version", "--version":
			fmt.Fprintln(stderr, version)
			return 0
		}
	}

	archivePath := args[len(args)-1]
	return analyze(archivePath, stdout, stderr)
}

// analyze runs the full pipeline: open the archive, find the entry point
// via its manifest, parse the entry class, resolve bindings, and report.
// Archive-level failures (unreadable archive, missing manifest, absent
// Main-Class, missing entry class) are all fatal.
func analyze(archivePath string, stdout, stderr io.Writer) int {
	zrc, err := loader.OpenArchive(archivePath)
	if err != nil {
		fmt.Fprintln(stderr, "guicelint: cannot open archive: "+err.Error())
		return 1
	}
	defer zrc.Close()

	mainClass, err := loader.MainClass(&zrc.Reader)
	if err != nil {
		fmt.Fprintln(stderr, "guicelint: cannot read manifest: "+err.Error())
		return 1
	}
	if mainClass == "" {
		fmt.Fprintln(stderr, "guicelint: archive has no Main-Class entry")
		return 1
	}

	ctx := loader.New(&zrc.Reader)
	entry, ok := ctx.Load(mainClass)
	if !ok {
		fmt.Fprintln(stderr, "guicelint: main class not found in archive: "+mainClass)
		return 1
	}
	if _, hasMain := entry.MethodsByName["main"]; !hasMain {
		fmt.Fprintln(stderr, "guicelint: main class has no main method: "+mainClass)
		return 1
	}

	trace.Info("analyzing entry point " + mainClass)
	result := resolver.Resolve(ctx, mainClass)
	unsatisfied := result.Unsatisfied()

	if report.Print(stdout, unsatisfied) {
		return 1
	}
	return 0
}
