package main

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

func setupLogger() {
	logger = log.New(os.Stderr)
	logger.SetReportTimestamp(false)

	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else if quiet {
		logger.SetLevel(log.ErrorLevel)
	}
}
