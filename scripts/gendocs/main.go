// Package main provides a generator that extracts CLI, error catalog and
// keyword metadata from the ecl sources and generates markdown
// documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=errors -outdir=docs/errors
//	go run ./scripts/gendocs -gen=keywords -outdir=docs/keywords
//	go run ./scripts/gendocs -gen=config -outdir=docs/concepts
//	go run ./scripts/gendocs -gen=all
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

type generator struct {
	name   string
	subdir string
	run    func(outDir string) error
}

var generators = []generator{
	{"cli", filepath.Join("docs", "cli"), generateCLIDocs},
	{"errors", filepath.Join("docs", "errors"), generateErrorDocs},
	{"keywords", filepath.Join("docs", "keywords"), generateKeywordDocs},
	{"config", filepath.Join("docs", "concepts"), generateConfigDocs},
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("gendocs", pflag.ContinueOnError)
	fs.String("gen", "all", "what to generate: cli, errors, keywords, config, all")
	fs.String("outdir", "", "output directory (defaults based on gen type)")
	return fs
}

func main() {
	fs := newFlagSet()
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	gen, _ := fs.GetString("gen")
	outDir, _ := fs.GetString("outdir")

	// Find project root (where go.mod is)
	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	if err := run(gen, outDir, projectRoot); err != nil {
		log.Fatal(err)
	}
	log.Println("Done!")
}

// run executes the named generator, or all of them. outDir overrides the
// default directory of a single generator.
func run(gen, outDir, projectRoot string) error {
	if gen != "all" {
		for _, g := range generators {
			if g.name != gen {
				continue
			}
			if outDir == "" {
				outDir = filepath.Join(projectRoot, g.subdir)
			}
			if err := g.run(outDir); err != nil {
				return fmt.Errorf("failed to generate %s docs: %w", g.name, err)
			}
			return nil
		}
		return fmt.Errorf("unknown -gen value: %s (use: cli, errors, keywords, config, all)", gen)
	}

	for _, g := range generators {
		if err := g.run(filepath.Join(projectRoot, g.subdir)); err != nil {
			return fmt.Errorf("failed to generate %s docs: %w", g.name, err)
		}
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
