package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	student, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUser(student), "Student registered successfully")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	student, tokens, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "student_id", student.ID)
	writeJSON(w, http.StatusOK, sessionView{
		User:         toUser(student),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "Student logged in successfully")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	StudentID    string `json:"studentId"`
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.RefreshToken == "" {
		writeErrorPage(w, r, http.StatusUnauthorized, CodeUnauthorized)
		return
	}

	tokens, err := s.users.RefreshToken(r.Context(), req.RefreshToken, req.StudentID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokensView{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, "Access token refreshed")
}

func (s *Server) generateOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	id, err := s.users.GenerateOTP(r.Context(), req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"studentId": id}, "OTP sent")
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID string `json:"studentId"`
		OTP       string `json:"otp"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.users.VerifyOTP(r.Context(), req.StudentID, req.OTP); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{}, "OTP verified")
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID   string `json:"studentId"`
		NewPassword string `json:"newPassword"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.users.ResetPassword(r.Context(), req.StudentID, req.NewPassword); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{}, "Password reset successfully")
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.users.ChangePassword(r.Context(), userID(r.Context()), req.OldPassword, req.NewPassword); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{}, "Password changed successfully")
}

func (s *Server) userDetails(w http.ResponseWriter, r *http.Request) {
	student, err := s.users.Student(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUser(student), "Student details fetched")
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	student, err := s.users.UpdateProfile(r.Context(), userID(r.Context()), mux.Vars(r)["id"], req.Name, req.Username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUser(student), "Profile updated")
}
