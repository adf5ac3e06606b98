package service

import (
	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// UserService backs the admin panel: listing students, password
// resets and disabling accounts.
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByID(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers(page, pageSize int, search string) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.List(page, pageSize, search)
}

// ResetPassword issues a new one-time password for a user and flags
// the account so the portal forces a change on next login.
func (s *UserService) ResetPassword(userID string) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	oneTimePassword := util.GenerateOneTimePassword(user.Email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(oneTimePassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user.Password = string(hashed)
	user.TempPassword = true
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	return oneTimePassword, nil
}

func (s *UserService) SetDisabled(userID string, disabled bool) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	user.Disabled = disabled
	return s.UserRepo.Update(user)
}
