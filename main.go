package main

import (
	"flag"
	"fmt"
	"os"

	"wsd/internal/di"
	"wsd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to console in addition to files")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "wsd: %v\n", err)
		os.Exit(1)
	}
}
