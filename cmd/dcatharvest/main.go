// Command dcatharvest maps DCAT-AP CH catalogs between RDF and the flat
// record format from the command line: parse turns source RDF into
// records, serialize renders stored records back to RDF, and paginate
// inspects a page's hydra paging node.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/opendata-swiss/dcatapchharvest/config"
	"github.com/opendata-swiss/dcatapchharvest/profile"
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "dcatharvest:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "parse":
		return runParse(args[1:])
	case "serialize":
		return runSerialize(args[1:])
	case "paginate":
		return runPaginate(args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  dcatharvest parse [-config file] [-format rdfxml|turtle|ntriples] <file>
  dcatharvest serialize [-config file] [-profile dcat|schemaorg] [-format rdfxml|turtle|ntriples|jsonld] <records.json>
  dcatharvest paginate [-format rdfxml|turtle|ntriples] <file>`)
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	configPath := fs.String("config", "", "configuration file")
	formatName := fs.String("format", "rdfxml", "input serialization")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	format, err := rdfx.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}

	bundle, err := vocabulary.Default()
	if err != nil {
		return err
	}
	g, err := rdfx.DecodeBytes(data, format)
	if err != nil {
		return err
	}
	datasets, err := profile.NewParser(bundle, log).ParseDatasets(g)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(datasets)
}

func runSerialize(args []string) error {
	fs := flag.NewFlagSet("serialize", flag.ExitOnError)
	configPath := fs.String("config", "", "configuration file")
	profileName := fs.String("profile", "dcat", "output profile")
	formatName := fs.String("format", "rdfxml", "output serialization")
	catalog := fs.Bool("catalog", false, "wrap datasets in a catalog node")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	format, err := rdfx.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}

	var datasets []*profile.Dataset
	if err := json.Unmarshal(data, &datasets); err != nil {
		return fmt.Errorf("parsing records: %w", err)
	}

	bundle, err := vocabulary.Default()
	if err != nil {
		return err
	}
	resolver := &profile.Resolver{
		SiteURL:              cfg.SiteURL,
		TestEnvironmentHosts: cfg.TestEnvironmentHosts,
	}
	serializer := profile.NewSerializer(bundle, resolver, log)

	var g *rdfx.Graph
	switch *profileName {
	case "dcat":
		if *catalog {
			g = serializer.CatalogGraph(datasets...)
		} else {
			g = serializer.Graph(datasets...)
		}
	case "schemaorg":
		g = serializer.SchemaOrgGraph(datasets...)
	default:
		return fmt.Errorf("unknown profile %q", *profileName)
	}

	return rdfx.Encode(os.Stdout, g, format)
}

func runPaginate(args []string) error {
	fs := flag.NewFlagSet("paginate", flag.ExitOnError)
	formatName := fs.String("format", "rdfxml", "input serialization")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := rdfx.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	g, err := rdfx.DecodeBytes(data, format)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(profile.ExtractPagination(g))
}
