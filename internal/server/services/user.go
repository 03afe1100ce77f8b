// Package services contains the business logic of the development backend.
// This file implements UserService: registration, login, profile updates,
// password changes and resets, and issuing and rotating tokens.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/dbx"
	"github.com/dmitrijs2005/examhub/internal/logging"
	"github.com/dmitrijs2005/examhub/internal/server/auth"
	"github.com/dmitrijs2005/examhub/internal/server/config"
	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/repomanager"
)

// DefaultOTPValidity is how long a password-reset code stays usable.
const DefaultOTPValidity = 10 * time.Minute

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// OTPNotifier delivers a reset code to a student. The development backend
// has no mailer, so the default one logs the code.
type OTPNotifier func(ctx context.Context, student *models.Student, code string)

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	otpValidity                  time.Duration
	notify                       OTPNotifier
	now                          func() time.Time
}

type UserOption func(*UserService)

func WithOTPNotifier(n OTPNotifier) UserOption {
	return func(s *UserService) { s.notify = n }
}

func WithOTPValidity(d time.Duration) UserOption {
	return func(s *UserService) { s.otpValidity = d }
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, opts ...UserOption) *UserService {
	s := &UserService{
		db:                           db,
		repomanager:                  m,
		logger:                       logger,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		otpValidity:                  DefaultOTPValidity,
		now:                          time.Now,
	}
	s.notify = func(ctx context.Context, student *models.Student, code string) {
		s.logger.Info(ctx, "password reset code", "student_id", student.ID, "email", logging.Email(student.Email), "otp", code)
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a student account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.Student, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := auth.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student, err := s.repomanager.Users(s.db).Create(ctx, &models.Student{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	s.logger.Info(ctx, "student registered", "student_id", student.ID)
	return student, nil
}

// Login verifies the password and, on success, returns the student with a
// new TokenPair.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Student, *TokenPair, error) {
	student, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}

	if err := auth.CheckPassword(student.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}

	pair, err := s.generateTokenPair(ctx, student.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return student, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. A non-empty studentID must match the token
// owner. Unknown or mismatched tokens yield common.ErrInvalidToken, expired
// ones common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken, studentID string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if studentID != "" && studentID != token.StudentID {
		return nil, common.ErrInvalidToken
	}
	if token.Expired(s.now()) {
		_ = repo.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		// A concurrent rotation may have consumed the token meanwhile.
		if _, err := repoTx.Find(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.StudentID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "refresh token rotated", "student_id", token.StudentID)
	return pair, nil
}

// Student returns the account with the given id.
func (s *UserService) Student(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error loading student: %w", err)
	}
	return student, nil
}

// UpdateProfile changes name and username of id. Students may only update
// their own profile. Empty values keep the current ones.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, id, name, username string) (*models.Student, error) {
	if actorID != id {
		return nil, ErrForbidden
	}
	current, err := s.Student(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name == "" {
		name = current.Name
	}
	if username = strings.TrimSpace(username); username == "" {
		username = current.Username
	}

	if err := s.repomanager.Users(s.db).UpdateProfile(ctx, id, name, username); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	current.Name, current.Username = name, username
	return current, nil
}

// ChangePassword replaces the password of id after checking the old one and
// revokes every refresh token of the student.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrMissingFields
	}
	student, err := s.Student(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(student.PasswordHash, []byte(oldPassword)); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrWrongPassword
		}
		return common.ErrorInternal
	}
	return s.setPassword(ctx, id, newPassword)
}

// GenerateOTP issues a reset code for the student registered under email
// and returns the student id the following steps refer to.
func (s *UserService) GenerateOTP(ctx context.Context, email string) (string, error) {
	student, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", ErrStudentNotFound
		}
		return "", fmt.Errorf("error loading student: %w", err)
	}

	code := makeOTP()
	otp := &models.OTP{StudentID: student.ID, Code: code, Expires: s.now().Add(s.otpValidity)}
	if err := s.repomanager.OTPs(s.db).Upsert(ctx, otp); err != nil {
		return "", fmt.Errorf("error saving otp: %w", err)
	}

	s.notify(ctx, student, code)
	return student.ID, nil
}

// VerifyOTP checks code against the pending reset of studentID.
func (s *UserService) VerifyOTP(ctx context.Context, studentID, code string) error {
	otp, err := s.pendingOTP(ctx, studentID, ErrInvalidOTP)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(strings.TrimSpace(code))) != 1 {
		return ErrInvalidOTP
	}
	if err := s.repomanager.OTPs(s.db).MarkVerified(ctx, studentID); err != nil {
		return fmt.Errorf("error verifying otp: %w", err)
	}
	return nil
}

// ResetPassword sets a new password once the reset code was verified.
func (s *UserService) ResetPassword(ctx context.Context, studentID, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}
	otp, err := s.pendingOTP(ctx, studentID, ErrOTPNotVerified)
	if err != nil {
		return err
	}
	if !otp.Verified {
		return ErrOTPNotVerified
	}
	return s.setPassword(ctx, studentID, newPassword)
}

func (s *UserService) pendingOTP(ctx context.Context, studentID string, missing error) (*models.OTP, error) {
	otp, err := s.repomanager.OTPs(s.db).Find(ctx, studentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, missing
		}
		return nil, fmt.Errorf("error loading otp: %w", err)
	}
	if otp.Expires.Before(s.now()) {
		return nil, ErrOTPExpired
	}
	return otp, nil
}

// setPassword stores the new hash, drops any pending reset code and revokes
// refresh tokens in one transaction.
func (s *UserService) setPassword(ctx context.Context, id, password string) error {
	hash, err := auth.HashPassword([]byte(password))
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, id, hash); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("error updating password: %w", err)
		}
		if err := s.repomanager.OTPs(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.repomanager.RefreshTokens(tx).DeleteByUser(ctx, id)
	})
}

// --- helpers below ---

func makeOTP() string {
	n := binary.BigEndian.Uint32(common.GenerateRandByteArray(4))
	return fmt.Sprintf("%06d", n%1_000_000)
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
