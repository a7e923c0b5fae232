package service

import (
	"errors"

	"github.com/dedesp/PancongKeceApp-sub000/internal/model"
	"github.com/dedesp/PancongKeceApp-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email is already registered")

// CreateUserRequest is the admin payload for a new staff account.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	RoleCode    string `json:"role_code"`
}

// UpdateUserRequest carries editable account fields; nil means keep.
type UpdateUserRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	RoleCode    *string `json:"role_code"`
	IsActive    *bool   `json:"is_active"`
}

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error)
	GetAllUsers() ([]model.User, error)
	GetUserByID(id uuid.UUID) (*model.User, error)
	DeleteUser(id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if req.RoleCode != "" {
		role, err := s.roleRepo.FindByCode(req.RoleCode)
		if err != nil {
			return nil, errors.New("role not found: " + req.RoleCode)
		}
		user.RoleID = &role.ID
	}

	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(user.ID)
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.RoleCode != nil {
		role, err := s.roleRepo.FindByCode(*req.RoleCode)
		if err != nil {
			return nil, errors.New("role not found: " + *req.RoleCode)
		}
		user.RoleID = &role.ID
		user.Role = role
	}
	user.UpdatedBy = updaterID

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAllUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(id)
}
