package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"filewords/internal/imagecheck"
	"filewords/internal/logging"
)

func main() {
	_ = godotenv.Load()
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: findbroken <path>")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, os.Getenv("FILEWORDS_LOG_LEVEL"), os.Getenv("FILEWORDS_LOG_FORMAT"))
	found, err := imagecheck.FindCorrupt(flag.Arg(0))
	if err != nil {
		logger.Error("walk failed", "path", flag.Arg(0), "err", err)
		os.Exit(1)
	}
	for _, f := range found {
		fmt.Println("CORRUPT", f.Path, f.Err)
	}
	logger.Info("scan finished", "corrupt", len(found))
}
