package service

import (
	"errors"

	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/util"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService authenticates students and provisions accounts. There
// is no self-registration: accounts are created by the Hotmart
// webhook (or by an admin), each with a generated one-time password.
type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Login validates credentials and issues a JWT. The returned user is
// the freshly loaded aggregate.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if user.Disabled {
		return "", nil, util.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("updating last login", zap.String("user", user.ID), zap.Error(err))
	}

	return token, user, nil
}

// ProvisionAccount creates an account for a purchaser's email with a
// generated one-time password. Called by the Hotmart webhook; an
// already-registered email is a no-op reported through created=false.
func (s *AuthService) ProvisionAccount(email, name string) (created bool, oneTimePassword string, err error) {
	_, err = s.UserRepo.FindByEmail(email)
	if err == nil {
		return false, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "", err
	}

	oneTimePassword = util.GenerateOneTimePassword(email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(oneTimePassword), bcrypt.DefaultCost)
	if err != nil {
		return false, "", err
	}

	if name == "" {
		name = "Aluno VAP"
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		Role:         model.Student,
		Level:        1,
		TempPassword: true,
	}

	if err := s.UserRepo.Create(user); err != nil {
		return false, "", err
	}

	logger.Log.Info("account provisioned", zap.String("email", email))
	return true, oneTimePassword, nil
}

// ChangePassword replaces the user's password and clears the
// one-time-password flag.
func (s *AuthService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.TempPassword = false
	return s.UserRepo.Update(user)
}
