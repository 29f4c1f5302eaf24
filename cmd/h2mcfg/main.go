// Command h2mcfg is the full-screen H2M server.cfg editor.
//
// Usage:
//
//	./h2mcfg [-config server.cfg] [-maps maps.txt] [-prefs h2mcfg.ini]
//
// Paths default to the values in the preferences file, which defaults to
// h2mcfg.ini in the working directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/stlalpha/h2mcfg/internal/cfgsession"
	"github.com/stlalpha/h2mcfg/internal/cfgwatch"
	"github.com/stlalpha/h2mcfg/internal/configeditor"
	"github.com/stlalpha/h2mcfg/internal/logging"
	"github.com/stlalpha/h2mcfg/internal/prefs"
)

func main() {
	prefsPath := flag.String("prefs", prefs.DefaultFile, "Path to the editor preferences file")
	configPath := flag.String("config", "", "Path to server.cfg (overrides prefs)")
	mapsPath := flag.String("maps", "", "Path to the map list (overrides prefs)")
	logFile := flag.String("log", "", "Append log output to this file (overrides prefs; default: discard)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	noWatch := flag.Bool("no-watch", false, "Do not watch server.cfg for outside changes")
	writePrefs := flag.Bool("write-prefs", false, "Write the effective preferences to -prefs and exit")
	flag.Parse()

	logging.Configure(*debug)

	p, err := prefs.Load(*prefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *configPath != "" {
		p.ConfigPath = *configPath
	}
	if *mapsPath != "" {
		p.MapsPath = *mapsPath
	}
	if *logFile != "" {
		p.LogFile = *logFile
	}
	if *noWatch {
		p.Watch = false
	}

	if *writePrefs {
		if err := prefs.Save(*prefsPath, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preferences written to %s\n", *prefsPath)
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: h2mcfg needs an interactive terminal (use cfgjson for scripting)")
		os.Exit(1)
	}

	// The TUI owns the screen; log lines go to a file or nowhere.
	closer, err := logging.RedirectToFile(p.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	sess, err := cfgsession.Open(cfgsession.Options{ConfigPath: p.ConfigPath, MapsPath: p.MapsPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("INFO: editing %s (maps: %s, %d available)", p.ConfigPath, p.MapsPath, sess.Catalog().Len())

	model := configeditor.New(sess, configeditor.Options{
		DefaultGametype: p.DefaultGametype,
		MaxRandom:       p.MaxRandom,
	})
	prog := tea.NewProgram(model, tea.WithAltScreen())

	if p.Watch {
		w, err := cfgwatch.New(p.ConfigPath, cfgwatch.DefaultDebounce, func(path string) {
			prog.Send(configeditor.FileChangedMsg{Path: path})
		})
		if err != nil {
			log.Printf("WARN: not watching %s: %v", p.ConfigPath, err)
		} else {
			defer w.Stop()
		}
	}

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
