package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type envelop map[string]any

func (*Server) writeJSON(w http.ResponseWriter, data envelop, status int, headers http.Header) error {
	jsonBytes, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	for k, v := range headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(jsonBytes)
	return err
}

// render executes the page into a buffer first, a failing template never sends a partial page
func (s *Server) render(w http.ResponseWriter, status int, data pageData) error {
	b := new(bytes.Buffer)
	if err := getTemplate().ExecuteTemplate(b, pageTemplate, data); err != nil {
		return fmt.Errorf("executing template %q: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
