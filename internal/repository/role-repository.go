package repository

import (
	"errors"
	"log"

	"userdirectory/internal/domain"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByCode(code string) (*domain.Role, error)
	List() ([]domain.Role, error)
	SeedRole(role *domain.Role) error
	DeleteByCode(code string) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByCode(code string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.
		Preload("Permissions").
		Where("code = ?", code).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List() ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.Preload("Permissions").Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// SeedRole inserts the role with its permissions if the code is not
// present yet. Used at boot; roles are otherwise managed out of band.
func (r *roleRepository) SeedRole(role *domain.Role) error {
	if role == nil || role.Code == "" {
		return errors.New("invalid role")
	}

	var existing domain.Role
	err := r.db.Where("code = ?", role.Code).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	for i := range role.Permissions {
		role.Permissions[i].RoleCode = role.Code
	}
	if err := r.db.Create(role).Error; err != nil {
		log.Printf("seed role %s error: %v", role.Code, err)
		return err
	}
	return nil
}

// DeleteByCode removes a role and everything hanging off it:
// permissions and user-role mappings go first, then the role, all in
// one transaction so a failure leaves nothing orphaned. Users holding
// the role and their profiles are untouched.
func (r *roleRepository) DeleteByCode(code string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_code = ?", code).Delete(&domain.Permission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_code = ?", code).Delete(&domain.UserRoleMapping{}).Error; err != nil {
			return err
		}
		return tx.Where("code = ?", code).Delete(&domain.Role{}).Error
	})
}
