package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/seitarof/gen-meta/internal/cli"
	"github.com/seitarof/gen-meta/internal/generator"
	"github.com/seitarof/gen-meta/internal/parser"
	"github.com/seitarof/gen-meta/internal/resolver"
	"github.com/seitarof/gen-meta/internal/selector"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync() //nolint:errcheck

	p := parser.New(parser.WithLogger(logger))
	ss := selector.NewStructSelector()
	fs := selector.NewFieldSelector()
	r := resolver.New(resolver.DefaultRules()...)
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)

	runner := cli.NewRunner(p, ss, fs, r, g, logger)
	if err := runner.Run(cfg); err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}
}
