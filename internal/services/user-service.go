package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"userdirectory/internal/domain"
	"userdirectory/internal/dto"
	"userdirectory/internal/interfaces"
	"userdirectory/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidInput marks create requests rejected before any write.
var ErrInvalidInput = errors.New("invalid input")

type UserService interface {
	GetUsers() ([]dto.UserResponse, error)
	GetUserByID(id string) (*dto.UserResponse, error)
	CreateUser(input dto.CreateUserRequest) (dto.CreateUserResult, error)
}

type userService struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository

	// messaging
	producer interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	roleRepo repository.RoleRepository,
	producer interfaces.ProducerHandler,
) UserService {
	return &userService{
		repo:     repo,
		roleRepo: roleRepo,
		producer: producer,
	}
}

func (u *userService) GetUsers() ([]dto.UserResponse, error) {
	users, err := u.repo.GetUsers()
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (u *userService) GetUserByID(id string) (*dto.UserResponse, error) {
	user, err := u.repo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (u *userService) CreateUser(input dto.CreateUserRequest) (dto.CreateUserResult, error) {
	userCode := strings.TrimSpace(input.UserCode)
	username := strings.TrimSpace(input.Username)

	if userCode == "" || username == "" {
		return dto.CreateUserResult{}, fmt.Errorf("%w: user_code and username are required", ErrInvalidInput)
	}
	// A user without a profile is invalid state, so the profile must
	// arrive attached and is inserted in the same transaction.
	if input.Profile == nil ||
		strings.TrimSpace(input.Profile.FirstName) == "" ||
		strings.TrimSpace(input.Profile.LastName) == "" {
		return dto.CreateUserResult{}, fmt.Errorf("%w: profile with first_name and last_name is required", ErrInvalidInput)
	}

	user := &domain.User{
		UserCode: userCode,
		Username: username,
		Profile: &domain.UserProfile{
			FirstName: strings.TrimSpace(input.Profile.FirstName),
			LastName:  strings.TrimSpace(input.Profile.LastName),
			Age:       input.Profile.Age,
		},
	}

	// The caller may pin the identifier (the original client did);
	// otherwise one is generated on insert.
	if input.ID != "" {
		uid, err := uuid.Parse(input.ID)
		if err != nil {
			return dto.CreateUserResult{}, fmt.Errorf("%w: id must be a valid UUID", ErrInvalidInput)
		}
		user.ID = uid
	}

	for _, m := range input.Roles {
		code := strings.TrimSpace(m.RoleCode)
		if code == "" {
			return dto.CreateUserResult{}, fmt.Errorf("%w: role_code must not be empty", ErrInvalidInput)
		}
		if _, err := u.roleRepo.FindByCode(code); err != nil {
			return dto.CreateUserResult{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, code)
		}
		user.RoleMappings = append(user.RoleMappings, domain.UserRoleMapping{RoleCode: code})
	}

	if _, err := u.repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return dto.CreateUserResult{Duplicate: true}, nil
		}
		return dto.CreateUserResult{}, err
	}

	// publish event (best effort)
	if u.producer != nil {
		payload, err := json.Marshal(dto.UserCreatedEvent{
			UserID:   user.ID.String(),
			UserCode: user.UserCode,
			Username: user.Username,
		})
		if err == nil {
			if err := u.producer.PublishMessage([]byte("user.created"), payload); err != nil {
				log.Printf("publish user.created error: %v", err)
			}
		}
	}

	return dto.CreateUserResult{UserID: user.ID.String()}, nil
}

func toUserResponse(user *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:           user.ID.String(),
		UserCode:     user.UserCode,
		Username:     user.Username,
		RoleMappings: make([]dto.RoleMappingResponse, 0, len(user.RoleMappings)),
	}

	if user.Profile != nil {
		resp.Profile = &dto.UserProfileResponse{
			ID:        user.Profile.ID,
			FirstName: user.Profile.FirstName,
			LastName:  user.Profile.LastName,
			Age:       user.Profile.Age,
		}
	}

	for _, m := range user.RoleMappings {
		mapping := dto.RoleMappingResponse{ID: m.ID}
		if m.Role != nil {
			role := &dto.RoleResponse{
				ID:          m.Role.ID,
				Code:        m.Role.Code,
				Name:        m.Role.Name,
				Permissions: make([]dto.PermissionResponse, 0, len(m.Role.Permissions)),
			}
			for _, p := range m.Role.Permissions {
				role.Permissions = append(role.Permissions, dto.PermissionResponse{
					ID:   p.ID,
					Name: p.Name,
				})
			}
			mapping.Role = role
		}
		resp.RoleMappings = append(resp.RoleMappings, mapping)
	}

	return resp
}
