// Command gendata writes a synthetic building point cloud to a spreadsheet or CSV file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"archviz/internal/dataset"
	"archviz/internal/generate"
	"archviz/internal/report"
)

var (
	flagVariant = flag.String("variant", "proper", "Structure to generate ("+strings.Join(generate.Names(), ", ")+")")
	flagOut     = flag.String("out", "", "Output file (.xlsx or .csv), default depends on the variant")
	flagDedup   = flag.String("dedup", "", "Override duplicate removal: on or off")
	flagList    = flag.Bool("list", false, "List available variants and exit")
)

func main() {
	flag.Parse()

	if *flagList {
		for _, name := range generate.Names() {
			v, _ := generate.Lookup(name)
			fmt.Printf("%-10s %-26s %s\n", v.Name, v.OutputFile, v.Description)
		}
		return
	}

	v, ok := generate.Lookup(*flagVariant)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown variant %q (available: %s)\n", *flagVariant, strings.Join(generate.Names(), ", "))
		os.Exit(1)
	}

	gen := v.New()
	switch *flagDedup {
	case "":
	case "on":
		gen = gen.WithDedup(true)
	case "off":
		gen = gen.WithDedup(false)
	default:
		fmt.Fprintf(os.Stderr, "Invalid -dedup value %q (use on or off)\n", *flagDedup)
		os.Exit(1)
	}

	out := *flagOut
	if out == "" {
		out = v.OutputFile
	}

	ds := gen.Generate()
	if err := dataset.Write(out, ds); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Print(report.Summary(v.Name, ds))
	fmt.Printf("Saved %d points to %s\n", ds.Len(), out)
}
