package dto

// Wire shapes for the directory API. These are deliberately separate
// from the domain models: the response structs carry no back
// references, so the serialized user graph is always acyclic.

type CreateUserRequest struct {
	ID       string             `json:"id,omitempty"`
	UserCode string             `json:"user_code" validate:"required,max=20"`
	Username string             `json:"username" validate:"required,max=100"`
	Profile  *ProfileInput      `json:"profile" validate:"required"`
	Roles    []RoleMappingInput `json:"role_mappings,omitempty"`
}

type ProfileInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Age       *int   `json:"age,omitempty"`
}

type RoleMappingInput struct {
	RoleCode string `json:"role_code" validate:"required"`
}

type CreateUserResult struct {
	Duplicate bool   `json:"duplicate"`
	UserID    string `json:"user_id,omitempty"`
}

type UserResponse struct {
	ID           string                `json:"id"`
	UserCode     string                `json:"user_code"`
	Username     string                `json:"username"`
	Profile      *UserProfileResponse  `json:"profile,omitempty"`
	RoleMappings []RoleMappingResponse `json:"role_mappings"`
}

type UserProfileResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       *int   `json:"age,omitempty"`
}

type RoleMappingResponse struct {
	ID   uint          `json:"id"`
	Role *RoleResponse `json:"role,omitempty"`
}

type RoleResponse struct {
	ID          uint                 `json:"id"`
	Code        string               `json:"code"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions"`
}

type PermissionResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
