package main

import (
	"flag"
	"fmt"
	"io"
)

// Options are the command line flags of weaverd.
type Options struct {
	ConfigPath  string
	SpecPath    string
	ShowVersion bool
}

// ParseFlags parses args (without the program name).
func ParseFlags(args []string, stderr io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("weaverd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "path to the configuration file (YAML, JSON or TOML)")
	fs.StringVar(&opts.SpecPath, "spec", "", "OpenAPI document to serve instead of the embedded one")
	fs.BoolVar(&opts.ShowVersion, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}
