// Copyright 2025 The SylCheck Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the syllable checker server and CLI [DBG] application.

SylCheck loads a vocabulary of Tibetan syllables into a trie and answers "is
this a valid syllable" for every token of a sentence. The vocabulary is built
from plain word lists and a suffix table: a list entry like བ/A expands to one
syllable per suffix of class A.

# Usage

Start the msgpack server with the default vocabulary directory:

	sylcheck

Check a single sentence and exit:

	sylcheck -s "བ་བོ་བར་དཀ"

	'བ' correct: true
	'བོ' correct: true
	'བར' correct: true
	'དཀ' correct: false

Run the interactive CLI with grapheme symbols and debug logging:

	sylcheck -c -mode grapheme -d

# Vocabulary

The data directory holds root.txt, wasurs.txt, rare.txt, exceptions.txt and
proper-names.txt plus suffixes.json. Other layouts are set in the config.

# Configuration

Runtime configuration is a TOML file, created with defaults when missing:

	[vocab]
	dir = "data/syllables"
	lists = ["root.txt", "wasurs.txt", "rare.txt", "exceptions.txt", "proper-names.txt"]
	suffix_file = "suffixes.json"
	separator = "/"

	[check]
	token_separator = "་"
	symbol_mode = "rune"

	[server]
	max_tokens = 512
	max_word_len = 64
	max_limit = 64

	[cli]
	default_limit = 24
	no_color = false

Flags override the config for a single run.

# Command Line Flags

	-data string
	    Directory containing the word lists
	-config string
	    Path to a config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-s string
	    Check one sentence and exit
	-sep string
	    Token separator (default from config)
	-mode string
	    Symbol granularity: rune or grapheme
	-limit int
	    Number of completions listed by the CLI
	-no-filter
	    Check numbers and non Tibetan tokens too
	-no-color
	    Plain CLI output
	-rebuild-config
	    Overwrite the default config file with defaults and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/sylcheck/internal/cli"
	"github.com/bastiangx/sylcheck/internal/utils"
	"github.com/bastiangx/sylcheck/pkg/config"
	"github.com/bastiangx/sylcheck/pkg/server"
	"github.com/bastiangx/sylcheck/pkg/spell"
	"github.com/bastiangx/sylcheck/pkg/symbol"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	Version = "0.3.0-beta"
	AppName = "sylcheck"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "", "Directory containing the word lists (default from config)")
	configPath := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	sentence := flag.String("s", "", "Check one sentence and exit")
	separator := flag.String("sep", "", "Token separator (default from config)")
	mode := flag.String("mode", "", "Symbol granularity: rune or grapheme (default from config)")
	limit := flag.Int("limit", 0, "Number of completions listed by the CLI (default from config)")
	noFilter := flag.Bool("no-filter", false, "Check numbers and non Tibetan tokens too (DBG only)")
	noColor := flag.Bool("no-color", false, "Plain CLI output")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Config rebuilt at %s\n", config.GetActiveConfigPath(""))
		return
	}

	cfg, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfig))

	if *dataDir != "" {
		cfg.Vocab.Dir = *dataDir
	}
	if *separator != "" {
		cfg.Check.TokenSeparator = *separator
	}
	if *mode != "" {
		cfg.Check.SymbolMode = *mode
	}
	cfg.CLI.DefaultLimit = cliLimit(flag.CommandLine, *limit, cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if pathResolver, err := utils.NewPathResolver(); err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	} else if resolved, err := pathResolver.GetDataDir(cfg.Vocab.Dir); err == nil {
		cfg.Vocab.Dir = resolved
	}
	log.Debugf("Using data dir at: %s", cfg.Vocab.Dir)

	checker, err := loadChecker(cfg)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	if *sentence != "" {
		for _, r := range checker.CheckSentence(*sentence, cfg.Check.TokenSeparator) {
			fmt.Printf("'%s' correct: %t\n", r.Token, r.Valid)
		}
		return
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(checker, cfg.Check.TokenSeparator, cfg.CLI.DefaultLimit, *noFilter)
		inputHandler.SetNoColor(*noColor || cfg.CLI.NoColor)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(checker, cfg)
	showStartupInfo(cfg.Vocab.Dir, checker)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// cliLimit returns the -limit value when it was given on the command line and
// the configured default otherwise.
func cliLimit(fs *flag.FlagSet, flagLimit int, cfg *config.Config) int {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "limit" {
			set = true
		}
	})
	if set {
		return flagLimit
	}
	return cfg.CLI.DefaultLimit
}

// loadChecker expands the vocabulary and runs the load phase.
func loadChecker(cfg *config.Config) (*spell.Checker, error) {
	symbolMode, err := symbol.ParseMode(cfg.Check.SymbolMode)
	if err != nil {
		return nil, err
	}

	words, err := cfg.Source().Words(afero.NewOsFs())
	if err != nil {
		return nil, err
	}

	checker := spell.New(symbolMode)
	added, err := checker.Load(words)
	if err != nil {
		return nil, err
	}
	checker.Freeze()
	log.Debug("Checker ready", "words", added, "mode", symbolMode)
	return checker, nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SylCheck ] Tibetan syllable checker")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dataDir string, checker *spell.Checker) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	stats := checker.Stats()
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("words: %s  nodes: %s", utils.FormatWithCommas(stats["words"]), utils.FormatWithCommas(stats["nodes"]))
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
