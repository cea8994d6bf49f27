// Package repolist turns shared library records into display rows,
// the same rows feed the terminal table and the web page.
package repolist

import (
	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/MuhamedUsman/sharedrepos/internal/domain"
	"github.com/dustin/go-humanize"
	"net/url"
	"strings"
	"time"
)

// GroupMarker is the suffix the platform appends to a group id to use it as an owner email
const GroupMarker = "@seafile_group"

const (
	NoLibraries  = "No libraries"
	brokenFormat = "Broken ({repo_id_placeholder})"
	unknownTime  = "--"
)

var (
	// Headers of the listing, the first column holds the icon
	Headers = []string{"", "Name", "Share From", "Size", "Last Update"}
	// ColumnWidths are percentages of the table width, aligned with Headers
	ColumnWidths = []int{5, 35, 20, 20, 20}

	uriComponentReplacer = strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
)

// Options decide which links a row may carry.
type Options struct {
	SiteRoot, MediaURL            string
	IsPro, EnableSysAdminViewRepo bool
}

func OptionsFrom(site config.SiteConfig) Options {
	return Options{
		SiteRoot:               site.SiteRoot,
		MediaURL:               site.MediaURL,
		IsPro:                  site.IsPro,
		EnableSysAdminViewRepo: site.EnableSysAdminViewRepo,
	}
}

// Link is a piece of text that may point somewhere,
// an empty URL means plain text.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

func (l Link) IsLink() bool { return l.URL != "" }

type Icon struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type Row struct {
	ID         string `json:"id"`
	Icon       Icon   `json:"icon"`
	Name       Link   `json:"name"`
	Owner      Link   `json:"owner"`
	Size       string `json:"size"`
	LastUpdate string `json:"last_update"`
	Broken     bool   `json:"broken"`
	Encrypted  bool   `json:"encrypted"`
}

// NewRows keeps the order of items, now anchors the relative "last update" text.
func NewRows(items []domain.RepoShareItem, opts Options, now time.Time) []Row {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = NewRow(item, opts, now)
	}
	return rows
}

func NewRow(item domain.RepoShareItem, opts Options, now time.Time) Row {
	return Row{
		ID:   item.ID,
		Icon: IconFor(item, opts.MediaURL),
		Name: DisplayName(item, opts),
		Owner: Link{
			Text: item.OwnerName,
			URL:  OwnerURL(opts.SiteRoot, item.OwnerEmail),
		},
		Size:       Size(item.Size),
		LastUpdate: LastUpdate(item.LastModify.Time, now),
		Broken:     item.IsBroken(),
		Encrypted:  item.Encrypted,
	}
}

// DisplayName links to the library page only when the admin is allowed to view
// libraries and the library is not encrypted.
func DisplayName(item domain.RepoShareItem, opts Options) Link {
	if item.IsBroken() {
		return Link{Text: strings.Replace(brokenFormat, "{repo_id_placeholder}", item.ID, 1)}
	}
	if opts.IsPro && opts.EnableSysAdminViewRepo && !item.Encrypted {
		return Link{Text: item.Name, URL: LibraryURL(opts.SiteRoot, item.ID)}
	}
	return Link{Text: item.Name}
}

// OwnerURL points at the department page for group owners ("<id>@seafile_group")
// and at the user page otherwise.
func OwnerURL(siteRoot, ownerEmail string) string {
	if i := strings.Index(ownerEmail, GroupMarker); i != -1 {
		return DepartmentURL(siteRoot, ownerEmail[:i])
	}
	return UserURL(siteRoot, ownerEmail)
}

func LibraryURL(siteRoot, id string) string {
	return siteRoot + "sys/libraries/" + id + "/"
}

func UserURL(siteRoot, email string) string {
	return siteRoot + "sys/users/" + EncodeURIComponent(email) + "/"
}

func DepartmentURL(siteRoot, groupID string) string {
	return siteRoot + "sys/departments/" + groupID + "/"
}

func IconFor(item domain.RepoShareItem, mediaURL string) Icon {
	if item.Encrypted {
		return Icon{URL: mediaURL + "img/lib/24/lib-encrypted.png", Title: "Encrypted library"}
	}
	return Icon{URL: mediaURL + "img/lib/24/lib.png", Title: "Read-Write library"}
}

func Size(bytes int64) string {
	return humanize.Bytes(uint64(max(0, bytes)))
}

// LastUpdate renders t relative to now, e.g. "3 hours ago".
func LastUpdate(t, now time.Time) string {
	if t.IsZero() {
		return unknownTime
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// EncodeURIComponent escapes s for use as a single URL component,
// leaving the same characters unescaped as browsers do.
func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}
