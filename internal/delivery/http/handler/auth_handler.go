package handler

import (
	"net/http"

	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/delivery/http/middleware"
	"puskesmas-frontdesk/internal/usecase"
	"puskesmas-frontdesk/pkg/response"
	"puskesmas-frontdesk/pkg/session"
	"puskesmas-frontdesk/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// ShowLogin serves the login page payload. Rendering itself belongs to the
// template layer.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Halaman login", nil)
}

// Login handles the login form: on success a session cookie is set and the
// browser is sent to the poli overview.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form body", nil)
		return
	}

	req := dto.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	_, token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Username atau password salah")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	setSessionCookie(w, token)
	http.Redirect(w, r, "/ui/poli", http.StatusFound)
}

// Logout drops the session and clears the cookie. Any later authenticated
// action behaves as guest.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.GetSessionTokenFromContext(r.Context()); ok {
		var userID *uint
		if user, ok := middleware.GetUserFromContext(r.Context()); ok {
			userID = &user.ID
		}
		h.authUsecase.Logout(r.Context(), token, userID)
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/ui/login", http.StatusFound)
}

// ShowRegister serves the registration page payload.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Halaman registrasi", nil)
}

// Register handles the registration form. A taken username re-surfaces as a
// conflict for the form to display inline.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form body", nil)
		return
	}

	req := dto.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	_, token, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameTaken:
			response.Error(w, http.StatusConflict, "Username sudah digunakan", nil)
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	setSessionCookie(w, token)
	http.Redirect(w, r, "/ui/poli", http.StatusFound)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
