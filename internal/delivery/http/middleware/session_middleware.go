package middleware

import (
	"context"
	"net/http"

	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/domain/repository"
	"puskesmas-frontdesk/pkg/response"
	"puskesmas-frontdesk/pkg/session"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type contextKey string

const (
	UserKey         contextKey = "user"
	SessionTokenKey contextKey = "session_token"
)

// SessionMiddleware resolves the session cookie into the logged-in user.
type SessionMiddleware struct {
	db       *gorm.DB
	log      *logrus.Logger
	sessions *session.Store
	userRepo repository.UserRepository
}

func NewSessionMiddleware(db *gorm.DB, log *logrus.Logger, sessions *session.Store, userRepo repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{
		db:       db,
		log:      log,
		sessions: sessions,
		userRepo: userRepo,
	}
}

// Attach puts the current user into the request context when the session
// cookie resolves. Guests pass through with no user set.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := m.sessions.Lookup(cookie.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.userRepo.FindByID(m.db.WithContext(r.Context()), userID)
		if err != nil {
			m.log.Warnf("Failed to load session user %d: %+v", userID, err)
			next.ServeHTTP(w, r)
			return
		}
		if user == nil {
			// Session refers to a removed user; drop it.
			m.sessions.Delete(cookie.Value)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, SessionTokenKey, cookie.Value)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin rejects guests with 401. Used on JSON routes.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); !ok {
			response.Unauthorized(w, "Silakan login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLoginRedirect sends guests to the login page. Used on UI form
// routes.
func RequireLoginRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/ui/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext extracts the logged-in user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok
}

// GetSessionTokenFromContext extracts the session token from context
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenKey).(string)
	return token, ok
}
