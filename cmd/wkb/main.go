package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/woozymasta/wkb/geom"
	"github.com/woozymasta/wkb/wkb"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input  string `short:"i" long:"in" description:"Input file path. Reads from stdin if empty"`
	Output string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Mode   string `short:"m" long:"mode" description:"Conversion direction" choice:"decode" choice:"encode" default:"decode"`
	Format string `short:"f" long:"format" description:"Decode output format" choice:"json" choice:"yaml" default:"json"`
	Binary bool   `short:"b" long:"binary" description:"Read (decode) or write (encode) raw WKB bytes instead of hex text"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	var outputData []byte
	if opts.Mode == "encode" {
		outputData, err = encode(inputData, opts.Binary)
	} else {
		outputData, err = decode(inputData, opts.Binary, opts.Format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		_, _ = os.Stdout.Write(outputData)
	}
}

// decode converts WKB input (hex text, or raw bytes with binary set) to a
// GeoJSON document in the requested format.
func decode(input []byte, binary bool, format string) ([]byte, error) {
	var (
		g   geom.Geometry
		err error
	)
	if binary {
		g, err = wkb.Decode(input)
	} else {
		g, err = wkb.DecodeHex(strings.TrimSpace(string(input)))
	}
	if err != nil {
		return nil, err
	}

	data, err := geom.MarshalGeoJSON(g)
	if err != nil {
		return nil, err
	}

	if format == "yaml" {
		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return yaml.Marshal(doc)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return nil, err
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

// encode converts a GeoJSON geometry to WKB, as lower-case hex text or raw
// bytes with binary set.
func encode(input []byte, binary bool) ([]byte, error) {
	g, err := geom.UnmarshalGeoJSON(input)
	if err != nil {
		return nil, err
	}

	if binary {
		return wkb.Encode(g)
	}

	text, err := wkb.EncodeHex(g)
	if err != nil {
		return nil, err
	}
	return []byte(text + "\n"), nil
}
