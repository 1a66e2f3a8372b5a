// tyjson - type-directed JSON interchange CLI
//
// Usage:
//
//	tyjson validate -t desc.yaml [file]   Check a JSON blob against a descriptor
//	tyjson decode -t desc.yaml [file]     Decode + re-encode, print canonical JSON
//	tyjson schema -t desc.yaml            Print the descriptor's JSON Schema
//	tyjson fmt [--indent] [file]          Reparse and re-emit JSON (order and
//	                                      number precision preserved)
//	tyjson version                        Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tyjson/tyjson/jsonio"
	"github.com/tyjson/tyjson/tyjson"
)

const libVersion = "0.1.0"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	ReportCaller:    false,
})

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	descPath := ""
	indent := false
	fileArg := ""
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-t" || arg == "--type":
			if i+1 >= len(args) {
				logger.Fatal("missing descriptor file after " + arg)
			}
			i++
			descPath = args[i]
		case strings.HasPrefix(arg, "--type="):
			descPath = strings.TrimPrefix(arg, "--type=")
		case arg == "--indent":
			indent = true
		default:
			if !strings.HasPrefix(arg, "-") && arg != "-" {
				fileArg = arg
			}
		}
	}

	var input io.Reader = os.Stdin
	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			logger.Fatal("open file", "err", err)
		}
		defer f.Close()
		input = f
	}

	switch cmd {
	case "validate":
		cmdValidate(input, mustDescriptor(descPath))
	case "decode", "encode":
		cmdDecode(input, mustDescriptor(descPath), indent)
	case "schema":
		cmdSchema(mustDescriptor(descPath), indent)
	case "fmt":
		cmdFmt(input, indent)
	case "version", "-v", "--version":
		fmt.Printf("tyjson %s\n", libVersion)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `tyjson - type-directed JSON interchange CLI

Usage:
  tyjson validate -t desc.yaml [file]   Check a JSON blob against a descriptor
  tyjson decode -t desc.yaml [file]     Decode + re-encode, print canonical JSON
  tyjson schema -t desc.yaml            Print the descriptor's JSON Schema
  tyjson fmt [--indent] [file]          Reparse and re-emit JSON
  tyjson version                        Print version info

Options:
  -t, --type FILE     Descriptor definition (YAML or JSON)
  --indent            Indent output

If no file is given, reads from stdin.

Examples:
  echo '{"x": 3}' | tyjson validate -t point.yaml
  echo '[1,2,3]' | tyjson decode -t ints.yaml
  tyjson schema -t point.yaml --indent
`)
}

func mustDescriptor(path string) *tyjson.Descriptor {
	if path == "" {
		logger.Fatal("a descriptor file is required (-t desc.yaml)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("read descriptor", "err", err)
	}
	d, err := tyjson.ParseDescriptorYAML(data)
	if err != nil {
		logger.Fatal("parse descriptor", "err", err)
	}
	if res := tyjson.Typecheckable(d); !res.OK {
		for _, r := range res.Trail {
			logger.Error(r.String())
		}
		logger.Fatal("descriptor is not typecheckable", "descriptor", d.String())
	}
	return d
}

// cmdValidate: decode the blob against the descriptor and report the trail.
func cmdValidate(r io.Reader, d *tyjson.Descriptor) {
	v, err := jsonio.Load(r, d)
	if err != nil {
		reportFault(err)
		os.Exit(1)
	}
	logger.Info("ok", "descriptor", d.String(), "value", v.String())
}

// cmdDecode: decode then re-encode, printing canonical JSON.
func cmdDecode(r io.Reader, d *tyjson.Descriptor, indent bool) {
	v, err := jsonio.Load(r, d)
	if err != nil {
		reportFault(err)
		os.Exit(1)
	}
	blob, err := tyjson.Encode(v, d)
	if err != nil {
		reportFault(err)
		os.Exit(1)
	}
	writeOut(blob, indent)
}

func cmdSchema(d *tyjson.Descriptor, indent bool) {
	doc, err := tyjson.ExportJSONSchema(d)
	if err != nil {
		reportFault(err)
		os.Exit(1)
	}
	// Make sure what we print actually compiles as a schema.
	if _, err := tyjson.CompileJSONSchema(d); err != nil {
		logger.Fatal("exported schema does not compile", "err", err)
	}
	writeOut(doc, indent)
}

func cmdFmt(r io.Reader, indent bool) {
	blob, err := jsonio.Read(r)
	if err != nil {
		logger.Fatal("parse input", "err", err)
	}
	writeOut(blob, indent)
}

func writeOut(blob any, indent bool) {
	var err error
	if indent {
		err = jsonio.WriteIndent(os.Stdout, blob, "", "  ")
	} else {
		err = jsonio.Write(os.Stdout, blob)
	}
	if err != nil {
		logger.Fatal("write output", "err", err)
	}
	fmt.Println()
}

// reportFault prints a fault's diagnostic trail, innermost reason first.
func reportFault(err error) {
	switch e := err.(type) {
	case *tyjson.MalformedDescriptorError:
		logger.Error("malformed descriptor", "descriptor", e.Descriptor)
		for _, r := range e.Trail {
			logger.Error(r.String())
		}
	case *tyjson.NonConformingError:
		logger.Error("value does not conform", "descriptor", e.Descriptor)
		for _, r := range e.Trail {
			logger.Error(r.String())
		}
	default:
		logger.Error(err.Error())
	}
}
