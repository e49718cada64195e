package converter

import (
	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
)

// UserToResponse converts a User entity to its DTO. The password hash is
// never exposed.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
