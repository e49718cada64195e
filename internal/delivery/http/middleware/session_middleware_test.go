package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/pkg/session"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	args := m.Called(db, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func newTestSessionMiddleware(t *testing.T, sessions *session.Store, userRepo *MockUserRepository) *SessionMiddleware {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return NewSessionMiddleware(db, logrus.New(), sessions, userRepo)
}

// captureHandler records whether a user reached the handler's context.
func captureHandler(gotUser **entity.User, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if user, ok := GetUserFromContext(r.Context()); ok {
			*gotUser = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAttach_GuestWithoutCookie(t *testing.T) {
	sessions := session.NewStore()
	userRepo := new(MockUserRepository)
	m := newTestSessionMiddleware(t, sessions, userRepo)

	var gotUser *entity.User
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/ui/poli", nil)
	rec := httptest.NewRecorder()

	m.Attach(captureHandler(&gotUser, &called)).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Nil(t, gotUser)
	userRepo.AssertNotCalled(t, "FindByID")
}

func TestAttach_UnknownTokenPassesAsGuest(t *testing.T) {
	sessions := session.NewStore()
	userRepo := new(MockUserRepository)
	m := newTestSessionMiddleware(t, sessions, userRepo)

	var gotUser *entity.User
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/ui/poli", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "stale-token"})
	rec := httptest.NewRecorder()

	m.Attach(captureHandler(&gotUser, &called)).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Nil(t, gotUser)
}

func TestAttach_ResolvesUser(t *testing.T) {
	sessions := session.NewStore()
	token := sessions.Create(9)

	user := &entity.User{ID: 9, Username: "budi", Role: entity.RoleUser}
	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, uint(9)).Return(user, nil)

	m := newTestSessionMiddleware(t, sessions, userRepo)

	var gotUser *entity.User
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/ui/poli", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()

	m.Attach(captureHandler(&gotUser, &called)).ServeHTTP(rec, req)

	require.NotNil(t, gotUser)
	assert.Equal(t, "budi", gotUser.Username)
	userRepo.AssertExpectations(t)
}

func TestAttach_DropsSessionOfRemovedUser(t *testing.T) {
	sessions := session.NewStore()
	token := sessions.Create(9)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, nil)

	m := newTestSessionMiddleware(t, sessions, userRepo)

	var gotUser *entity.User
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/ui/poli", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()

	m.Attach(captureHandler(&gotUser, &called)).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Nil(t, gotUser)

	_, ok := sessions.Lookup(token)
	assert.False(t, ok)
}

func TestRequireLogin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("guest gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/user/antrean", nil)
		rec := httptest.NewRecorder()

		RequireLogin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("logged-in user passes", func(t *testing.T) {
		user := &entity.User{ID: 1, Role: entity.RoleUser}
		ctx := context.WithValue(context.Background(), UserKey, user)
		req := httptest.NewRequest(http.MethodPost, "/user/antrean", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		RequireLogin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireLoginRedirect_GuestRedirectsToLogin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/ui/antrean/daftar", nil)
	rec := httptest.NewRecorder()

	RequireLoginRedirect(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ui/login", rec.Header().Get("Location"))
}
