// Command tpxo prints tidal constituent amplitude and phase at lat/lon
// points, interpolated from a local TPXO9 atlas file.
//
// Usage:
//
//	tpxo [flags] <lat> <lon> [<lat> <lon> ...]
//	tpxo -list
//
// Examples:
//
//	tpxo 40.71 -74.01
//	tpxo -constituent K1 40.71 -74.01
//	tpxo -all 40.71 -74.01
//	tpxo -all -json 40.71 -74.01 47.61 -122.33
//	tpxo -file /data/h_tpxo9.v1.nc 40.71 -74.01
//	tpxo -list
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/SanderHulst/adcircpy/tpxo"
)

// jsonPoint is a single interpolated point in JSON output.
type jsonPoint struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Amplitude float64 `json:"amplitude_m"`
	Phase     float64 `json:"phase_deg"`
}

// jsonConstituent is one constituent's results in JSON output.
type jsonConstituent struct {
	Constituent string      `json:"constituent"`
	Points      []jsonPoint `json:"points"`
}

// jsonOutput is the top-level JSON response.
type jsonOutput struct {
	Dataset string            `json:"dataset"`
	Results []jsonConstituent `json:"results"`
}

func main() {
	constituent := flag.String("constituent", "M2", "Constituent name (see -list)")
	file := flag.String("file", "", "Path to h_tpxo9.v1.nc (default: $TPXO_NCFILE or the per-user data dir)")
	allConstituents := flag.Bool("all", false, "Print every constituent")
	asJSON := flag.Bool("json", false, "Output results as JSON")
	listConstituents := flag.Bool("list", false, "Print the constituent catalog and exit")
	flag.Usage = usage
	flag.Parse()

	if *listConstituents {
		printCatalog()
		os.Exit(0)
	}

	if flag.NArg() == 0 || flag.NArg()%2 != 0 {
		fmt.Fprintln(os.Stderr, "error: one or more <lat> <lon> pairs are required")
		usage()
		os.Exit(2)
	}

	lats := make([]float64, 0, flag.NArg()/2)
	vertices := make([][]float64, 0, flag.NArg()/2)
	for i := 0; i < flag.NArg(); i += 2 {
		lat, err := strconv.ParseFloat(flag.Arg(i), 64)
		if err != nil {
			fatalf("invalid lat %q: %v", flag.Arg(i), err)
		}
		lon, err := strconv.ParseFloat(flag.Arg(i+1), 64)
		if err != nil {
			fatalf("invalid lon %q: %v", flag.Arg(i+1), err)
		}
		lats = append(lats, lat)
		vertices = append(vertices, []float64{lon, lat})
	}

	atlas, err := tpxo.Open(*file)
	if err != nil {
		fatalf("%v", err)
	}

	names := []string{*constituent}
	if *allConstituents {
		names = atlas.Constituents()
	}

	out := jsonOutput{Dataset: atlas.Path()}
	for _, name := range names {
		amp, err := atlas.GetAmplitude(name, vertices)
		if err != nil {
			fatalf("%s amplitude: %v", name, err)
		}
		phase, err := atlas.GetPhase(name, vertices)
		if err != nil {
			fatalf("%s phase: %v", name, err)
		}
		jc := jsonConstituent{Constituent: name}
		for i := range vertices {
			jc.Points = append(jc.Points, jsonPoint{
				Lat:       lats[i],
				Lon:       vertices[i][0],
				Amplitude: amp[i],
				Phase:     phase[i],
			})
		}
		out.Results = append(out.Results, jc)
	}

	if *asJSON {
		emitJSON(out)
		return
	}
	printResults(out)
}

// printResults displays results in aligned text form.
func printResults(out jsonOutput) {
	fmt.Printf("\n")
	fmt.Printf("  Dataset : %s\n", out.Dataset)
	fmt.Printf("\n")
	for _, r := range out.Results {
		for _, p := range r.Points {
			fmt.Printf("  %-4s  (%9.4f°N, %9.4f°E)  amplitude %8.4f m   phase %8.2f°\n",
				r.Constituent, p.Lat, p.Lon, p.Amplitude, p.Phase)
		}
	}
	fmt.Printf("\n")
}

// emitJSON writes jsonOutput to stdout as indented JSON.
func emitJSON(out jsonOutput) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatalf("json encode: %v", err)
	}
}

func printCatalog() {
	fmt.Println("TPXO9 constituents, in dataset order:")
	fmt.Println()
	for i, name := range tpxo.Catalog() {
		fmt.Printf("  %2d  %s\n", i, name)
	}
	fmt.Println()
}

func usage() {
	fmt.Fprintln(os.Stderr, `tpxo — print tidal constituent amplitude and phase at lat/lon points

Usage:
  tpxo [flags] <lat> <lon> [<lat> <lon> ...]
  tpxo -list

Flags:`)
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, `
Examples:
  tpxo 40.71 -74.01
  tpxo -constituent K1 40.71 -74.01
  tpxo -all -json 40.71 -74.01 47.61 -122.33
  tpxo -file /data/h_tpxo9.v1.nc 40.71 -74.01
  tpxo -list`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
