// Command weaverd serves the items catalogue through the operation
// registry.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/drblury/opweaver/internal/config"
)

var version = "dev"

func main() {
	opts, err := ParseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.ShowVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if opts.SpecPath != "" {
		cfg.Spec.Path = opts.SpecPath
	}

	newApp(cfg).Run()
}
