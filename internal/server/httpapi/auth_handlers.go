package httpapi

import "net/http"

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.auth.Signup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserView(user))
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sealed, user, err := s.auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	http.SetCookie(w, s.sessionCookie(sealed, int(s.cfg.TokenValidityDuration.Seconds())))
	writeJSON(w, http.StatusOK, toUserView(user))
}

func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Signout(r.Context(), subjectID(r.Context())); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	http.SetCookie(w, s.sessionCookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

// handleRefresh takes no body; the session cookie itself is the credential.
// The old cookie value stops validating as soon as the new one is issued.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing session cookie")
		return
	}
	sealed, err := s.auth.Refresh(r.Context(), c.Value)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	http.SetCookie(w, s.sessionCookie(sealed, int(s.cfg.TokenValidityDuration.Seconds())))
	w.WriteHeader(http.StatusNoContent)
}
