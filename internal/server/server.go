package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/MuhamedUsman/sharedrepos/internal/bgtask"
	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/MuhamedUsman/sharedrepos/internal/page"
	"github.com/MuhamedUsman/sharedrepos/internal/repolist"
	"github.com/justinas/alice"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

// redirectDelay leaves the permission error on screen before the browser
// follows the login redirect
const redirectDelay = 3

type Server struct {
	fetcher page.Fetcher
	site    config.SiteConfig
	// Once Done, the server will exit
	StopCtx context.Context
	// Cancel func for StopCtx
	StopCancel context.CancelFunc
	// Every Goroutine must run through BT Run function
	BT  *bgtask.BackgroundTask
	now func() time.Time
}

func New(f page.Fetcher, site config.SiteConfig) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		fetcher:    f,
		site:       site,
		StopCtx:    ctx,
		StopCancel: cancel,
		BT:         bgtask.New(),
		now:        time.Now,
	}
}

// StartServer serves the pages on addr until StopCtx is done or the process
// receives SIGINT/SIGTERM, then waits up to 5 seconds for the server & 5 seconds
// for background tasks.
func (s *Server) StartServer(addr string) error {
	server := &http.Server{
		Addr:              addr,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// two upstream reads per page, each bounded by the client timeout
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
		Handler:      s.routes(),
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}
	errChan := s.listenAndShutdown(server)
	slog.Info("Starting Server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listening on address %q: %w", server.Addr, err)
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("server shutting down: %v", err)
	}
	if err := s.BT.Shutdown(5 * time.Second); err != nil {
		return fmt.Errorf("shutting down background tasks: %v", err)
	}
	slog.Info("Server stopped", "address", server.Addr)
	return nil
}

func (s *Server) listenAndShutdown(server *http.Server) chan error {
	errChan := make(chan error)
	go func() {
		defer close(errChan)
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)
		select {
		case <-s.StopCtx.Done():
		case sig := <-quit:
			slog.Info("Shutting down server", "signal", sig.String())
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			errChan <- fmt.Errorf("shutting down server: %v", err)
		}
	}()
	return errChan
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	standard := alice.New(s.recoverPanic, s.logRequest)
	mux.Handle("GET /healthz", standard.ThenFunc(s.healthz))
	mux.Handle("GET "+sitePath(s.site.SiteRoot)+"sys/users/{email}/shared-libraries/", standard.ThenFunc(s.sharedRepos))
	mux.Handle("/", standard.ThenFunc(s.notFoundResponse))
	return mux
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.writeJSON(w, envelop{"status": "available"}, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

// sharedRepos renders the libraries shared with the user in the path,
// as HTML or, for "Accept: application/json", as JSON.
func (s *Server) sharedRepos(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		s.notFoundResponse(w, r)
		return
	}

	st := page.Load(r.Context(), s.fetcher, email, currentURL(r), s.site.LoginURL)
	rows := repolist.NewRows(st.Repos, repolist.OptionsFrom(s.site), s.now())

	if prefersJSON(r) {
		if st.Failure != page.NoFailure {
			s.fetchFailedResponse(w, r, st)
			return
		}
		data := envelop{"user": st.User, "repo_list": rows}
		if err := s.writeJSON(w, data, http.StatusOK, nil); err != nil {
			s.serverErrorResponse(w, r, err)
		}
		return
	}

	if st.Redirect != "" {
		w.Header().Set("Refresh", fmt.Sprintf("%d; url=%s", redirectDelay, st.Redirect))
	}
	if err := s.render(w, http.StatusOK, newPageData(email, st, rows, s.site)); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

// currentURL rebuilds the URL the browser asked for, it is where the login page sends the admin back to
func currentURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func prefersJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// sitePath is the path part of the site root, "/" for absolute roots without one
func sitePath(siteRoot string) string {
	u, err := url.Parse(siteRoot)
	if err != nil || u.Path == "" {
		return "/"
	}
	if !strings.HasSuffix(u.Path, "/") {
		return u.Path + "/"
	}
	return u.Path
}
