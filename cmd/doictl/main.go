// Command doictl inspects and registers GCN Circular DOIs from the command line.
package main

import (
	"os"

	"github.com/jrsteele09/gcn-portal/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := newRootCmd(config.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
