package server

import (
	"github.com/MuhamedUsman/sharedrepos/internal/page"
	"log/slog"
	"net/http"
)

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	data := envelop{"errors": message}
	if prefersJSON(r) {
		if err := s.writeJSON(w, data, status, nil); err != nil {
			slog.Error(err.Error())
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(message.(string))); err != nil {
		slog.Error(err.Error())
	}
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	message := "the server encountered a problem and could not process your request"
	s.errorResponse(w, r, http.StatusInternalServerError, message)
	slog.Error(err.Error(), "path", r.URL.Path)
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource cannot be found"
	s.errorResponse(w, r, http.StatusNotFound, message)
}

// fetchFailedResponse answers JSON clients when the repo list could not be read,
// a permission failure carries the login redirect along.
func (s *Server) fetchFailedResponse(w http.ResponseWriter, r *http.Request, st page.State) {
	status := http.StatusBadGateway
	data := envelop{"errors": st.ErrMsg}
	if st.Failure == page.PermissionDenied {
		status = http.StatusForbidden
		data["redirect"] = st.Redirect
	}
	if err := s.writeJSON(w, data, status, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}
