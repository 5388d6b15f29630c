package main

import (
	"io"
	"os"
	"strings"

	"github.com/woozymasta/wkb/geom"
	"github.com/woozymasta/wkb/internal/logger"
	"github.com/woozymasta/wkb/internal/render"
	"github.com/woozymasta/wkb/wkb"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input   string  `short:"i" long:"in" description:"Input WKB file path. Reads from stdin if empty"`
	Output  string  `short:"o" long:"out" description:"Output WebP file path" required:"true"`
	Size    int     `short:"s" long:"size" description:"Output image edge length in pixels" default:"512"`
	Quality float32 `short:"q" long:"quality" description:"WebP quality" default:"90"`
	Binary  bool    `short:"b" long:"binary" description:"Treat input as raw WKB bytes instead of hex text"`
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

	opts.Logger.Setup()

	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read input file")
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
	}

	var g geom.Geometry
	if opts.Binary {
		g, err = wkb.Decode(inputData)
	} else {
		g, err = wkb.DecodeHex(strings.TrimSpace(string(inputData)))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode WKB input")
	}

	renderOpts := render.DefaultOptions()
	renderOpts.Size = opts.Size
	renderOpts.Quality = opts.Quality

	out, err := os.Create(opts.Output)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create output file")
	}

	if err := render.WriteWebP(out, g, renderOpts); err != nil {
		_ = out.Close()
		log.Fatal().Err(err).Msg("Failed to render geometry")
	}
	if err := out.Close(); err != nil {
		log.Fatal().Err(err).Msg("Failed to close output file")
	}

	log.Info().
		Str("kind", g.Kind().String()).
		Str("output", opts.Output).
		Int("size", opts.Size).
		Msg("Render finished successfully")
}
