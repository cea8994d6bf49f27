package server

import (
	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/MuhamedUsman/sharedrepos/internal/page"
	"github.com/MuhamedUsman/sharedrepos/internal/repolist"
	"github.com/MuhamedUsman/sharedrepos/internal/webui"
	"html/template"
	"sync"
)

const pageTemplate = "shared_repos.tmpl.html"

var (
	once sync.Once
	t    *template.Template
)

func getTemplate() *template.Template {
	once.Do(func() {
		t = template.Must(template.New(pageTemplate).ParseFS(webui.Files, pageTemplate))
	})
	return t
}

type tabLink struct {
	Title, URL string
	Current    bool
}

type pageData struct {
	UserName    string
	Tabs        []tabLink
	ErrMsg      string
	Redirect    string
	Headers     []string
	Widths      []int
	Rows        []repolist.Row
	NoLibraries string
}

func newPageData(email string, st page.State, rows []repolist.Row, site config.SiteConfig) pageData {
	tabs := make([]tabLink, len(page.Tabs))
	for i, tab := range page.Tabs {
		tabs[i] = tabLink{
			Title:   tab.Title,
			URL:     page.TabURL(site.SiteRoot, email, tab),
			Current: i == page.CurrentTab,
		}
	}
	return pageData{
		UserName:    st.UserName(email),
		Tabs:        tabs,
		ErrMsg:      st.ErrMsg,
		Redirect:    st.Redirect,
		Headers:     repolist.Headers,
		Widths:      repolist.ColumnWidths,
		Rows:        rows,
		NoLibraries: repolist.NoLibraries,
	}
}
