package services

import (
	"log"

	"linkadmin/internal/apperrors"
	"linkadmin/internal/models"
	"linkadmin/internal/repositories"
)

type UpdateUserRequest struct {
	Username    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
}

// UserService is the profile surface; account lifecycle lives in
// AccountService.
type UserService interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	UpdateUser(email string, req UpdateUserRequest) (*models.User, error)
	DeleteUser(email string) error
	ListUsers(limit, offset int) ([]*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	return user, nil
}

func (s *userService) GetUserByID(id int64) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	return user, nil
}

func (s *userService) UpdateUser(email string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if err := s.repo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(email string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	log.Printf("[user][delete] removing account email=%q", email)
	return s.repo.Delete(user.ID)
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(limit, offset)
}
