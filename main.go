// Package main provides the entry point for the archviz visualizer.
package main

import (
	"context"
	"log"
	"os"

	"archviz/internal/app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	os.Exit(app.Run(context.Background(), os.Args[1:], app.Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: log.Default(),
	}))
}
