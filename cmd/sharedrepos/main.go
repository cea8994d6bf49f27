package main

import (
	"fmt"
	"github.com/MuhamedUsman/sharedrepos/internal/client"
	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/MuhamedUsman/sharedrepos/internal/tui"
	"github.com/MuhamedUsman/sharedrepos/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/pflag"
	"log/slog"
	"os"
)

func main() {
	var (
		email, cfgPath, logPath string
		token                   string
		debug                   bool
	)
	pflag.StringVarP(&email, "email", "e", "", "email of the user whose shared libraries are listed")
	pflag.StringVarP(&cfgPath, "config", "c", "", "config file, defaults to the one in the user config dir")
	pflag.StringVarP(&token, "token", "t", "", "admin API token, saved to the user config file for later runs")
	pflag.StringVar(&logPath, "log", "sharedrepos.log", "file the logs are written to")
	pflag.BoolVar(&debug, "debug", false, "log at debug level")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --email <user email>\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if email == "" && pflag.NArg() > 0 {
		email = pflag.Arg(0)
	}
	if email == "" {
		pflag.Usage()
		os.Exit(2)
	}

	// the terminal belongs to the tui, logs go to a file
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening log file:", err)
		os.Exit(1)
	}
	defer f.Close()
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	util.ConfigureSlog(f, level, true)

	cfg, err := config.Open(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if token != "" {
		cfg.Server.Token = token
		// an explicit --config file is left as the admin wrote it
		if cfgPath == "" {
			if err = config.Save(cfg); err != nil {
				slog.Error("Saving token", "err", err)
				fmt.Fprintln(os.Stderr, "Error saving token:", err)
			}
		}
	}
	slog.Info("Starting", "email", email, "server", cfg.Server.URL)

	p := tea.NewProgram(tui.InitialMainModel(client.New(cfg.Server), email, cfg), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		slog.Error("Running program", "err", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	final, ok := m.(tui.MainModel)
	if !ok || final.Redirect() == "" {
		return
	}
	fmt.Println("Permission denied, log in with an admin account and come back:")
	fmt.Println(final.Redirect())
	qrterminal.GenerateHalfBlock(final.Redirect(), qrterminal.L, os.Stdout)
}
