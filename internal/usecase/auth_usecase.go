package usecase

import (
	"context"
	"errors"
	"strings"

	"puskesmas-frontdesk/internal/converter"
	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/domain/repository"
	"puskesmas-frontdesk/internal/service"
	"puskesmas-frontdesk/pkg/session"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	// Register creates a user with role "user" and opens a session.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, string, error)
	// Login verifies credentials and opens a session.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error)
	// Logout drops the session; subsequent lookups behave as guest.
	Logout(ctx context.Context, token string, userID *uint)
	CurrentUser(ctx context.Context, userID uint) (*entity.User, error)
}

type authUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	sessions *session.Store
	audit    service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessions *session.Store,
	audit service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		sessions: sessions,
		audit:    audit,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, "", err
	}

	user := &entity.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     entity.RoleUser,
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, "", ErrUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, "", err
	}

	token := u.sessions.Create(user.ID)

	if err := u.audit.Record(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"username": user.Username,
	}); err != nil {
		u.log.Warnf("Failed to audit registration: %+v", err)
	}

	return converter.UserToResponse(user), token, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := u.sessions.Create(user.ID)

	if err := u.audit.Record(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"username": user.Username,
	}); err != nil {
		u.log.Warnf("Failed to audit login: %+v", err)
	}

	return converter.UserToResponse(user), token, nil
}

func (u *authUsecase) Logout(ctx context.Context, token string, userID *uint) {
	u.sessions.Delete(token)

	if err := u.audit.Record(ctx, u.db.WithContext(ctx), userID, entity.AuditActionUserLogout, nil); err != nil {
		u.log.Warnf("Failed to audit logout: %+v", err)
	}
}

func (u *authUsecase) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
