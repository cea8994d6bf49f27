// Package webui holds the html templates served by the web page.
package webui

import "embed"

//go:embed *.tmpl.html
var Files embed.FS
