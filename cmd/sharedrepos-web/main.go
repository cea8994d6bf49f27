package main

import (
	"context"
	"fmt"
	"github.com/MuhamedUsman/sharedrepos/internal/client"
	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/MuhamedUsman/sharedrepos/internal/mdns"
	"github.com/MuhamedUsman/sharedrepos/internal/network"
	"github.com/MuhamedUsman/sharedrepos/internal/server"
	"github.com/MuhamedUsman/sharedrepos/internal/util"
	"github.com/spf13/pflag"
	"log/slog"
	"os"
	"time"
)

func main() {
	var (
		cfgPath, addr   string
		publish, browse bool
		debug           bool
	)
	pflag.StringVarP(&cfgPath, "config", "c", "", "config file, defaults to the one in the user config dir")
	pflag.StringVar(&addr, "addr", "", "listen address, overrides web.addr")
	pflag.BoolVar(&publish, "publish", false, "advertise the pages via mDNS, overrides web.publish")
	pflag.BoolVar(&browse, "browse", false, "list the instances advertised on the local network and exit")
	pflag.BoolVar(&debug, "debug", false, "log at debug level")
	pflag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	util.ConfigureSlog(os.Stderr, level, false)

	if browse {
		if err := listInstances(); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Open(cfgPath)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	if addr != "" {
		cfg.Web.Addr = addr
	}
	if pflag.CommandLine.Changed("publish") {
		cfg.Web.Publish = publish
	}

	s := server.New(client.New(cfg.Server), cfg.Site)
	if cfg.Web.Publish {
		publishInstance(s, cfg)
	}
	if err = s.StartServer(cfg.Web.Addr); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func publishInstance(s *server.Server, cfg config.Config) {
	port, err := network.Port(cfg.Web.Addr)
	if err != nil {
		slog.Error("Not publishing mDNS entry", "err", err)
		return
	}
	svc, err := mdns.NewService(cfg.Web.Instance, port, cfg.Site.SiteRoot)
	if err != nil {
		slog.Error("Not publishing mDNS entry", "err", err)
		return
	}
	s.BT.Run(func(shutdownCtx context.Context) {
		slog.Info("Publishing Multicast DNS Entry", "instance", svc.Instance, "port", svc.Port)
		if err := mdns.Publish(shutdownCtx, svc); err != nil {
			slog.Error(err.Error())
		}
	})
}

func listInstances() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	entries, err := mdns.Browse(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No instances found")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\t%s\n", e.Instance, e.Host, e.URL())
	}
	return nil
}
