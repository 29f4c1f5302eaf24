// Command cfgjson exports server.cfg as JSON and imports JSON back into it.
//
// Usage:
//
//	./cfgjson export [-config server.cfg] [-maps maps.txt] [-o out.json]
//	./cfgjson import [-config server.cfg] [-i in.json] [-dry-run]
//
// Import reads stdin when -i is not given. -dry-run prints the resulting
// server.cfg instead of writing it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tidwall/gjson"
	"golang.org/x/term"

	"github.com/stlalpha/h2mcfg/internal/cfgsession"
	"github.com/stlalpha/h2mcfg/internal/jsonexport"
	"github.com/stlalpha/h2mcfg/internal/logging"
	"github.com/stlalpha/h2mcfg/internal/prefs"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: cfgjson export|import [flags]")
	fmt.Fprintln(os.Stderr, "Run 'cfgjson <command> -h' for command flags.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	prefsPath := fs.String("prefs", prefs.DefaultFile, "Path to the editor preferences file")
	configPath := fs.String("config", "", "Path to server.cfg (overrides prefs)")
	mapsPath := fs.String("maps", "", "Path to the map list (overrides prefs)")
	debug := fs.Bool("debug", false, "Enable debug logging")

	var run func(*cfgsession.Session) error
	switch cmd {
	case "export":
		out := fs.String("o", "", "Write JSON to this file instead of stdout")
		run = func(s *cfgsession.Session) error { return export(s, *out) }
	case "import":
		in := fs.String("i", "", "Read JSON from this file instead of stdin")
		dryRun := fs.Bool("dry-run", false, "Print the resulting server.cfg instead of saving")
		run = func(s *cfgsession.Session) error { return importJSON(s, *in, *dryRun) }
	default:
		usage()
		os.Exit(2)
	}
	fs.Parse(args)

	logging.Configure(*debug)
	log.SetOutput(os.Stderr)

	p, err := prefs.Load(*prefsPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if *configPath != "" {
		p.ConfigPath = *configPath
	}
	if *mapsPath != "" {
		p.MapsPath = *mapsPath
	}

	sess, err := cfgsession.Open(cfgsession.Options{ConfigPath: p.ConfigPath, MapsPath: p.MapsPath})
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if err := run(sess); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func export(s *cfgsession.Session, out string) error {
	data, err := jsonexport.Export(s)
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	if out != "" {
		data = []byte(gjson.GetBytes(data, "@pretty").Raw)
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		log.Printf("INFO: exported %s to %s", s.ConfigPath(), out)
		return nil
	}
	// Compact for pipes, indented for people.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		data = []byte(gjson.GetBytes(data, "@pretty").Raw)
	} else {
		data = append(data, '\n')
	}
	_, err = os.Stdout.Write(data)
	return err
}

func importJSON(s *cfgsession.Session, in string, dryRun bool) error {
	var (
		data []byte
		err  error
	)
	if in != "" {
		data, err = os.ReadFile(in)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if err := jsonexport.Import(s, data); err != nil {
		return fmt.Errorf("importing: %w", err)
	}
	if dryRun {
		_, err := fmt.Fprintln(os.Stdout, s.Serialize())
		return err
	}
	if !s.Dirty() {
		log.Printf("INFO: %s already matches the input", s.ConfigPath())
		return nil
	}
	return s.Save()
}
