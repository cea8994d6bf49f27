package tui

import (
	"github.com/charmbracelet/x/ansi"
	"net/url"
)

// hyperlink wraps text in an OSC 8 hyperlink, terminals without support print the text only.
func hyperlink(text, link string) string {
	if link == "" {
		return text
	}
	return ansi.SetHyperlink(link) + text + ansi.ResetHyperlink()
}

// absoluteURL resolves ref, usually a site root relative path, against the platform's URL.
func absoluteURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
