package testserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/maynagashev/libadmin/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.UserAccount, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.users[id].account)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var u models.UserAccount
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request")
		return
	}
	errs, messages := s.validateUser(u, 0, true)
	if len(messages) > 0 {
		writeValidation(w, errs, messages)
		return
	}
	writeJSON(w, http.StatusCreated, s.AddUser(u.Name, u.Email, u.Password))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	var u models.UserAccount
	if err = json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request")
		return
	}
	errs, messages := s.validateUser(u, id, false)
	if len(messages) > 0 {
		writeValidation(w, errs, messages)
		return
	}

	var hash []byte
	if u.Password != "" {
		if hash, err = bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Could not hash password")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	stored.account.Name = u.Name
	stored.account.Email = u.Email
	if hash != nil {
		stored.passwordHash = hash
	}
	s.users[id] = stored
	writeJSON(w, http.StatusOK, stored.account)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	delete(s.users, id)
	writeMessage(w, http.StatusOK, "User deleted")
}

// validateUser проверяет обязательные поля и уникальность email.
// При обновлении пароль необязателен.
func (s *Server) validateUser(u models.UserAccount, selfID int64, create bool) (map[string][]string, []string) {
	errs := map[string][]string{}
	var messages []string
	if u.Name == "" {
		errs["name"] = []string{"required"}
		messages = append(messages, "Name is required")
	}
	if u.Email == "" {
		errs["email"] = []string{"required"}
		messages = append(messages, "Email is required")
	}
	if create && u.Password == "" {
		errs["password"] = []string{"required"}
		messages = append(messages, "Password is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stored := range s.users {
		if id != selfID && u.Email != "" && stored.account.Email == u.Email {
			errs["email"] = append(errs["email"], "unique")
			messages = append(messages, "The email has already been taken.")
			break
		}
	}
	return errs, messages
}
