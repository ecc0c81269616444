package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/TimelordUK/sql-cli-go/app"
	"github.com/TimelordUK/sql-cli-go/buffer"
	"github.com/TimelordUK/sql-cli-go/config"
	"github.com/TimelordUK/sql-cli-go/datatable"
)

var logpath = flag.String("log", "", "log to file")
var format = flag.String("format", "", "input format: csv, json, or snapshot (default: by file extension)")
var query = flag.String("query", "", "query to run against the loaded table; default is SELECT * FROM <table>")
var export = flag.String("export", "", "export the query result as csv or json to this path instead of printing it")
var noHeader = flag.Bool("no-header", false, "treat the first CSV row as data, not a header")

func main() {
	flag.Usage = printUsage
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	if *logpath != "" {
		logFile, err := os.Create(*logpath)
		if err != nil {
			exitWithError(err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	path := flag.Arg(0)
	if path == "" {
		exitWithError(fmt.Errorf("usage: %s [options...] <path>", os.Args[0]))
	}

	if err := run(path); err != nil {
		exitWithError(err)
	}
}

func run(path string) error {
	configPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return err
	}
	log.Printf("config path: %s\n", configPath)

	a := app.New(cfg)

	table, err := loadTable(path)
	if err != nil {
		return err
	}

	buf, err := a.OpenTable(table)
	if err != nil {
		return err
	}
	log.Printf("opened buffer %q with %d rows\n", buf.Name, table.NumRows())

	if *query != "" {
		if err := a.ExecuteQuery(*query); err != nil {
			return err
		}
	}

	return emit(a.Buffers.Current())
}

func loadTable(path string) (*datatable.DataTable, error) {
	kind := *format
	if kind == "" {
		kind = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	switch strings.ToLower(kind) {
	case "csv", "":
		opts := datatable.DefaultCSVOptions()
		opts.HasHeader = !*noHeader
		return datatable.LoadCSVFile(path, opts)
	case "json":
		return datatable.LoadJSONFile(path)
	case "snapshot":
		return datatable.LoadSnapshotFile(path)
	default:
		return nil, fmt.Errorf("unrecognized input format %q", kind)
	}
}

// emit writes the current buffer's result view to stdout, or to the
// -export path if one was given.
func emit(buf *buffer.Buffer) error {
	if buf == nil || buf.View == nil {
		return fmt.Errorf("no result to display")
	}

	if *export != "" {
		switch strings.ToLower(strings.TrimPrefix(filepath.Ext(*export), ".")) {
		case "json":
			return buf.View.ExportJSONFile(*export)
		default:
			return buf.View.ExportCSVFile(*export)
		}
	}

	data, err := buf.View.ExportCSV()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...] <path>\n", os.Args[0])
	flag.PrintDefaults()
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
