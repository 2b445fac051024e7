package repository

import (
	"errors"
	"log"

	"userdirectory/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateUser signals that a user with the same identifier
	// or user code already exists. No write happens in that case.
	ErrDuplicateUser = errors.New("duplicate user")

	// ErrUserNotFound signals a lookup miss. Callers get this instead
	// of an empty record so "not found" and "found defaults" never
	// look the same.
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	GetUsers() ([]domain.User, error)
	GetUserByID(id string) (*domain.User, error)
	CreateUser(user *domain.User) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetUsers returns every user fully hydrated: profile, role mappings,
// each mapping's role and that role's permissions. Nothing is loaded
// lazily; the whole graph is in memory when this returns.
func (r *userRepository) GetUsers() ([]domain.User, error) {
	var users []domain.User

	err := r.db.
		Preload("Profile").
		Preload("RoleMappings.Role.Permissions").
		Find(&users).Error
	if err != nil {
		log.Printf("list users error: %v", err)
		return nil, errors.New("failed to list users")
	}

	return users, nil
}

// GetUserByID hydrates to the same depth as GetUsers. The id is the
// string form of the user's identifier; anything that does not parse
// as a UUID cannot match and is reported as not found.
func (r *userRepository) GetUserByID(id string) (*domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user := &domain.User{}
	err = r.db.
		Preload("Profile").
		Preload("RoleMappings.Role.Permissions").
		First(user, "id = ?", uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("find user by id error: %v", err)
		return nil, errors.New("failed to find user by ID")
	}

	return user, nil
}

// CreateUser inserts the user together with its attached profile and
// role mappings, all in one transaction. The existence check runs
// inside the same transaction, and the unique constraints on id and
// user_code are the real guard: a concurrent create that slips past
// the check still surfaces as ErrDuplicateUser, never as a second row.
func (r *userRepository) CreateUser(user *domain.User) (int64, error) {
	if user == nil {
		return 0, errors.New("nil user")
	}

	var created int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&domain.User{}).
			Where("id = ? OR user_code = ?", user.ID, user.UserCode).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUser
		}

		res := tx.Create(user)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUser
			}
			return res.Error
		}
		created = res.RowsAffected
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return 0, ErrDuplicateUser
		}
		log.Printf("create user error: %v", err)
		return 0, errors.New("failed to create user")
	}

	return created, nil
}
