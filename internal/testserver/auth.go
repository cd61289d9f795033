package testserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maynagashev/libadmin/models"
)

const tokenTTL = time.Hour

type contextKey string

const claimsKey contextKey = "claims"

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request")
		return
	}

	errs := map[string][]string{}
	var messages []string
	if req.Name == "" {
		errs["name"] = []string{"required"}
		messages = append(messages, "Name is required")
	}
	if req.Password == "" {
		errs["password"] = []string{"required"}
		messages = append(messages, "Password is required")
	}
	if len(messages) > 0 {
		writeValidation(w, errs, messages)
		return
	}

	s.mu.Lock()
	var found *storedUser
	for id := range s.users {
		u := s.users[id]
		if u.account.Name == req.Name {
			found = &u
			break
		}
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.passwordHash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.IssueToken(found.account.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  models.User{ID: found.account.ID, Name: found.account.Name, Email: found.account.Email},
	})
}

// IssueToken выпускает действующий токен для пользователя.
func (s *Server) IssueToken(userID models.ID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, _ := r.Context().Value(claimsKey).(*jwt.RegisteredClaims)
	s.mu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.mu.Unlock()
	writeMessage(w, http.StatusOK, "Logged out")
}

// authenticate проверяет bearer-токен и отклоненные при выходе токены.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		s.mu.Lock()
		_, revoked := s.revoked[claims.ID]
		userID, _ := strconv.ParseInt(claims.Subject, 10, 64)
		_, exists := s.users[userID]
		s.mu.Unlock()
		if revoked || !exists {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}
