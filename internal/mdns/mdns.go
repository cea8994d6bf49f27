// Package mdns advertises the web page on the local network, so admins can
// reach it as "<instance>._http._tcp.local." without knowing the host's address.
package mdns

import (
	"context"
	"errors"
	"fmt"
	"github.com/MuhamedUsman/sharedrepos/internal/network"
	"github.com/brutella/dnssd"
	"github.com/brutella/dnssd/log"
	"net"
	"os"
	"strings"
)

const (
	DefaultInstance = "sharedrepos"
	// PathKey holds the path prefix of the pages in the TXT record
	PathKey     = "path"
	mdnsService = "_http._tcp"
	domain      = "local."
)

func init() {
	log.Info.Disable()
}

// Service describes the advertisement of one web server.
type Service struct {
	Instance string
	Host     string
	Port     int
	Path     string
	IPs      []net.IP
}

// ServiceEntry is a web server found on the local network.
type ServiceEntry struct {
	Instance, Host, Path string
	IPs                  []net.IP
	Port                 int
}

// URL of the entry's pages, using its first address.
func (e ServiceEntry) URL() string {
	if len(e.IPs) == 0 {
		return ""
	}
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(e.IPs[0].String(), fmt.Sprint(e.Port)), e.Path)
}

// NewService fills in the host name & the outbound address when left empty.
func NewService(instance string, port int, path string) (Service, error) {
	if instance == "" {
		instance = DefaultInstance
	}
	host, err := os.Hostname()
	if err != nil {
		return Service{}, fmt.Errorf("getting hostname: %v", err)
	}
	ip, err := network.GetOutboundIP()
	if err != nil {
		return Service{}, err
	}
	return Service{Instance: instance, Host: host, Port: port, Path: path, IPs: []net.IP{ip}}, nil
}

func (s Service) config() dnssd.Config {
	return dnssd.Config{
		Name:   s.Instance,
		Type:   mdnsService,
		Domain: strings.TrimSuffix(domain, "."),
		Host:   s.Host,
		Port:   s.Port,
		IPs:    s.IPs,
		Text:   map[string]string{PathKey: s.Path},
	}
}

// Publish answers mDNS queries for s until ctx is canceled.
func Publish(ctx context.Context, s Service) error {
	sv, err := dnssd.NewService(s.config())
	if err != nil {
		return fmt.Errorf("registering mdns entry: %v", err)
	}
	rp, err := dnssd.NewResponder()
	if err != nil {
		return fmt.Errorf("creating mdns responder: %v", err)
	}
	if _, err = rp.Add(sv); err != nil {
		return fmt.Errorf("adding service to mdns responder: %v", err)
	}
	if err = rp.Respond(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("responding to mdns requests: %v", err)
	}
	return nil
}

// Browse collects the web servers advertised on the local network until ctx is done,
// entries without a path are other http services and are skipped.
func Browse(ctx context.Context) ([]ServiceEntry, error) {
	found := make(map[string]ServiceEntry)
	addFn := func(e dnssd.BrowseEntry) {
		path, ok := e.Text[PathKey]
		if !ok {
			return
		}
		found[e.Name] = ServiceEntry{Instance: e.Name, Host: e.Host, Path: path, IPs: e.IPs, Port: e.Port}
	}
	rmvFn := func(e dnssd.BrowseEntry) { delete(found, e.Name) }
	service := fmt.Sprintf("%s.%s", mdnsService, domain)
	err := dnssd.LookupType(ctx, service, addFn, rmvFn)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("browsing mdns services: %v", err)
	}
	entries := make([]ServiceEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, e)
	}
	return entries, nil
}
