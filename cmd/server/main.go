package main

import (
	"log"
	"os"

	"msgboard/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)

	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
