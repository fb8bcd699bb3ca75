// Command guicelint statically analyzes a packaged Guice application for
// injection sites whose binding cannot be satisfied.
package main

import "os"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
