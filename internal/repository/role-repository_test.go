package repository

import (
	"errors"
	"testing"

	"userdirectory/internal/domain"

	"gorm.io/gorm"
)

func TestSeedRoleIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db)

	for i := 0; i < 2; i++ {
		role := domain.Role{Code: "R1", Name: "Role One", Permissions: []domain.Permission{{Name: "read"}}}
		if err := repo.SeedRole(&role); err != nil {
			t.Fatalf("seed #%d: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&domain.Role{}).Where("code = ?", "R1").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one R1 role, got %d", count)
	}

	var perms int64
	if err := db.Model(&domain.Permission{}).Where("role_code = ?", "R1").Count(&perms).Error; err != nil {
		t.Fatalf("count permissions: %v", err)
	}
	if perms != 1 {
		t.Fatalf("expected one permission, got %d", perms)
	}
}

func TestDeleteRoleCascades(t *testing.T) {
	db := setupTestDB(t)
	seedRoleR1(t, db)
	userRepo := NewUserRepository(db)
	roleRepo := NewRoleRepository(db)

	user := newU1()
	if _, err := userRepo.CreateUser(user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := roleRepo.DeleteByCode("R1"); err != nil {
		t.Fatalf("delete role: %v", err)
	}

	var perms, mappings int64
	db.Model(&domain.Permission{}).Where("role_code = ?", "R1").Count(&perms)
	db.Model(&domain.UserRoleMapping{}).Where("role_code = ?", "R1").Count(&mappings)
	if perms != 0 || mappings != 0 {
		t.Fatalf("cascade incomplete: %d permissions, %d mappings left", perms, mappings)
	}

	if _, err := roleRepo.FindByCode("R1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected role gone, got %v", err)
	}

	// The referencing user and its profile must survive.
	got, err := userRepo.GetUserByID(user.ID.String())
	if err != nil {
		t.Fatalf("user should still exist: %v", err)
	}
	if got.Profile == nil || got.Profile.FirstName != "Ann" {
		t.Fatalf("profile should be untouched: %+v", got.Profile)
	}
	if len(got.RoleMappings) != 0 {
		t.Fatalf("expected no mappings left, got %d", len(got.RoleMappings))
	}
}
