/*
Package main implements the spellsuggest server and command line
interface.

spellsuggest finds close dictionary corrections for a misspelled word
using a vim-spell-style error-tolerant trie search: a bounded edit
distance walk over a packed trie, backed by phonetic ("sound-fold")
matching for suggestions that share no characters with the original
typo. It can run as a msgpack IPC server for editor integrations or as
a standalone CLI for interactive testing.

# Server mode

The server loads one dictionary per configured language and answers
{"id", "bad", "opts"} requests with ranked {"id", "suggestions"}
responses over stdin/stdout.

# CLI mode

The CLI provides an interactive shell: type a bad word, see its
corrections.

# Dictionaries

Dictionary source files use the plain-text format pkg/dictionary.Load
parses: a [WORDS] section of word/frequency/flag lines, plus optional
[PREFIX]/[REP]/[REPSAL]/[MAP]/[COMPOUNDRULE]/[CHECKCOMPOUNDPATTERN]/
[COMPOUND] sections.

# Config

Runtime configuration is managed via a config.toml file, covering the
server, dictionary, suggestion, and CLI settings. A default
configuration is created automatically if one does not exist.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/dexgs/spellsuggest/pkg/config"
	"github.com/dexgs/spellsuggest/pkg/dictionary"
	"github.com/dexgs/spellsuggest/pkg/server"
	"github.com/dexgs/spellsuggest/pkg/suggest"

	"github.com/dexgs/spellsuggest/internal/cli"
	"github.com/dexgs/spellsuggest/internal/utils"
)

const (
	Version = "0.1.0-beta"
	AppName = "spellsuggest"
	gh      = "https://github.com/dexgs/spellsuggest"
)

// sigHandler exits cleanly on SIGINT/SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI; it does
// not implement suggestion logic itself, only the startup flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	dictFlags := flag.StringArray("dict", nil, "lang=path pairs for dictionary source files (repeatable)")
	debugMode := flag.BoolP("verbose", "v", false, "Toggle verbose mode")
	cliMode := flag.BoolP("cli", "c", false, "Run the interactive CLI instead of the server")
	mode := flag.String("mode", defaultConfig.Suggest.DefaultMode, "Default 'spellsuggest' option string (best|fast|double)")
	showScores := flag.Bool("scores", defaultConfig.CLI.ShowScores, "Show suggestion scores in CLI mode")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{ReportCaller: false, ReportTimestamp: false})
		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[spellsuggest] finds close dictionary corrections for a misspelled word")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use --help to see available options")
		logger.Print("")
		logger.Print("Find out more at", "gh", gh)
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	configPath := resolveConfigPath(*configFile)
	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !flag.CommandLine.Changed("mode") && appConfig.Suggest.DefaultMode != "" {
		*mode = appConfig.Suggest.DefaultMode
	}

	sources := parseDictFlags(*dictFlags)
	if len(sources) == 0 {
		for i, p := range appConfig.Dict.Paths {
			sources[fmt.Sprintf("lang%d", i)] = p
		}
	}
	resolveDictPaths(sources)

	runtime := dictionary.NewRuntimeLoader(sources)
	var dicts []*dictionary.Dictionary
	for _, lang := range runtime.AvailableLanguages() {
		d, err := runtime.Load(lang)
		if err != nil {
			log.Warnf("failed to load dictionary %q: %v", lang, err)
			continue
		}
		dicts = append(dicts, d)
	}
	if len(dicts) == 0 {
		log.Warn("no dictionaries loaded, suggestions will always be empty")
	}

	opts, err := suggest.ParseSpellsuggest(*mode)
	if err != nil {
		log.Warnf("invalid --mode %q: %v, using defaults", *mode, err)
	}
	orchestrator := suggest.NewOrchestrator(dicts, opts)
	orchestrator.SetCache(suggest.NewResultCache(appConfig.Suggest.MaxSuggestions * 4))

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(orchestrator, *mode, *showScores, appConfig.CLI.Colorize)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC server")
	srv := server.NewServer(orchestrator, runtime, appConfig, configPath)
	showStartupInfo(len(dicts))

	if err := srv.Start(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// resolveConfigPath falls back to the platform config directory, probed
// via a PathResolver, when none was given on the command line.
func resolveConfigPath(configFile string) string {
	if configFile != "" {
		return configFile
	}
	pr, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("path resolver unavailable, falling back to cwd: %v", err)
		return "config.toml"
	}
	path, err := pr.GetConfigPath("config.toml")
	if err != nil {
		log.Warnf("config path resolution failed: %v", err)
		return "config.toml"
	}
	return path
}

// resolveDictPaths rewrites any non-absolute, not-found source path in
// sources to the first match found next to the executable, the config
// directory, or the working directory, so "--dict en=en.dict" works
// from wherever spellsuggest was invoked.
func resolveDictPaths(sources map[string]string) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return
	}
	searchDirs := []string{pr.GetExecutableDir(), pr.GetConfigDir(), "."}
	for lang, path := range sources {
		if _, statErr := os.Stat(path); statErr == nil {
			continue
		}
		if found, findErr := pr.FindFileInPaths(path, searchDirs); findErr == nil {
			sources[lang] = found
		}
	}
}

// parseDictFlags turns repeated --dict lang=path flags into a map.
func parseDictFlags(flags []string) map[string]string {
	sources := make(map[string]string, len(flags))
	for _, f := range flags {
		parts := strings.SplitN(f, "=", 2)
		if len(parts) != 2 {
			log.Warnf("ignoring malformed --dict value %q (want lang=path)", f)
			continue
		}
		sources[parts[0]] = parts[1]
	}
	return sources
}

// showStartupInfo displays basic info about the init process.
func showStartupInfo(dictCount int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===============")
	println(" spellsuggest  ")
	println("===============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dictionaries loaded: %d", dictCount)
	log.Info("status: ready")
	println("===============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
