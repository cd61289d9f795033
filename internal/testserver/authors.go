package testserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maynagashev/libadmin/models"
)

func (s *Server) handleListAuthors(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	authors := s.sortedAuthors()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, authors)
}

func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var a models.Author
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request")
		return
	}
	if errs, messages := validateAuthor(a); len(messages) > 0 {
		writeValidation(w, errs, messages)
		return
	}
	writeJSON(w, http.StatusCreated, s.AddAuthor(a))
}

func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Author not found")
		return
	}
	var a models.Author
	if err = json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request")
		return
	}
	if errs, messages := validateAuthor(a); len(messages) > 0 {
		writeValidation(w, errs, messages)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authors[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Author not found")
		return
	}
	a.ID = id
	s.authors[id] = a
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Author not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.authors[id]; !ok {
		writeMessage(w, http.StatusNotFound, "Author not found")
		return
	}
	delete(s.authors, id)
	writeMessage(w, http.StatusOK, "Author deleted")
}

func validateAuthor(a models.Author) (map[string][]string, []string) {
	errs := map[string][]string{}
	var messages []string
	if a.Name == "" {
		errs["name"] = []string{"required"}
		messages = append(messages, "Name is required")
	}
	if a.Nationality == "" {
		errs["nationality"] = []string{"required"}
		messages = append(messages, "Nationality is required")
	}
	if a.Birthdate != "" {
		if _, err := time.Parse(time.DateOnly, a.Birthdate); err != nil {
			errs["birthdate"] = []string{"date"}
			messages = append(messages, "Birthdate must be a valid date")
		}
	}
	return errs, messages
}
