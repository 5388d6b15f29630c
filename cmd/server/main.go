package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/wkb/internal/config"
	"github.com/woozymasta/wkb/internal/logger"
	"github.com/woozymasta/wkb/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"   env:"CONFIG_FILE"    description:"Path to configuration file"`
	Addr       string `short:"a" long:"addr"     env:"LISTEN_ADDRESS" description:"Address to listen on"             default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"     env:"LISTEN_PORT"    description:"Port to listen on"                default:"8080"`
	MaxBody    int64  `short:"m" long:"max-body" env:"MAX_BODY_BYTES" description:"Maximum request body size, bytes" default:"4194304"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		cfg = loaded
	}

	// Flags fill anything the config file left unset
	if cfg.Addr == "" {
		cfg.Addr = opts.Addr
	}
	if cfg.Port <= 0 {
		cfg.Port = opts.Port
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = opts.MaxBody
	}

	srvCtx := server.NewServerContext(cfg)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/kinds", srvCtx.HandleKinds)
	mux.HandleFunc("/api/decode", srvCtx.HandleDecode)
	mux.HandleFunc("/api/encode", srvCtx.HandleEncode)
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port)
	log.Info().
		Str("addr", listenAddr).
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
