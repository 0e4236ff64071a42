package server

import (
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"
	"time"
)

type adminSession struct {
	Email    string
	IssuedAt int64
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil {
		if !s.limiter.Allow("login:"+clientIP(r), 5, time.Minute) {
			s.respondMessage(w, http.StatusTooManyRequests, "Too many login attempts. Try again shortly.")
			return
		}
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "Invalid login payload.")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.config.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.AdminPassword)) == 1
	if !emailOK || !passwordOK {
		s.logger.WithField("email", req.Email).Warn("failed admin login")
		s.respondMessage(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	session := adminSession{Email: req.Email, IssuedAt: time.Now().Unix()}
	encoded, err := s.cookie.Encode(s.config.CookieName, session)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		s.respondMessage(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   s.config.SessionMaxAgeSec,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.Environment != "development",
	})

	s.respondMessage(w, http.StatusOK, "Logged in successfully.")
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	s.respondMessage(w, http.StatusOK, "Logged out successfully.")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
