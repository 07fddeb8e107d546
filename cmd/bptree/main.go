package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"go.uber.org/zap"

	"bptree"
	"bptree/internal/cli"
	"bptree/logger"
)

var shouldSeed, verbose, useColor *bool
var degree, cacheSize, seedNumRecords *int

func seedTreeWithTestRecords(t *bptree.Tree[string, string]) {
	for i := 0; i < *seedNumRecords; i++ {
		k := faker.Word() + faker.Word()
		v := faker.Word() + faker.Word()
		t.Insert(k, v)
	}
}

func main() {
	setupFlags()

	if !*useColor {
		color.NoColor = true
	}

	opts := []bptree.Option{bptree.WithLookupCache(*cacheSize)}
	if *verbose {
		zapLogger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer zapLogger.Sync()
		opts = append(opts, bptree.WithLogger(logger.NewZap(zapLogger)))
	}

	tree, err := bptree.New[string, string](*degree, opts...)
	if err != nil {
		log.Fatal(err)
	}

	if *shouldSeed {
		seedTreeWithTestRecords(tree)
	}

	scanner := bufio.NewScanner(os.Stdin)
	demo := cli.NewCli(scanner, os.Stdout, tree)
	demo.Start()
}

func setupFlags() {
	degree = flag.Int("degree", 4, "Maximum number of children of an internal node.")
	cacheSize = flag.Int("cache", 0, "Entries in the lookup cache; 0 disables it.")
	shouldSeed = flag.Bool("seed", false, "Seed the tree using records created with go-faker.")
	seedNumRecords = flag.Int("records", 1000, "Amount of records to seed the tree with upon startup.")
	verbose = flag.Bool("verbose", false, "Log structural events to stderr.")
	useColor = flag.Bool("color", true, "Color the tree dump and prompts.")
	flag.Usage = func() {
		fmt.Println("\nB+ Tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}
