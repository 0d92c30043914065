package usecase

import (
	"bytes"
	"context"

	"pingme/internal/domain/entity"
	"pingme/internal/domain/repository"
	"pingme/internal/domain/service"
	"pingme/pkg/errors"
	"pingme/pkg/logger"
	"pingme/pkg/utils"
)

const maxBioLength = 210

type UserUseCase struct {
	userRepo repository.UserRepository
	uploader service.FileUploadService
}

type UpdateProfileInput struct {
	FullName   string `json:"fullName"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"` // base64 data URL, uploaded on change
}

type UpdatePrivacyInput struct {
	ShowOnlineStatus *bool `json:"showOnlineStatus"`
	ReadReceipts     *bool `json:"readReceipts"`
}

func NewUserUseCase(userRepo repository.UserRepository, uploader service.FileUploadService) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Bio != "" {
		if len(input.Bio) > maxBioLength {
			return nil, errors.BadRequest("Bio must be at most 210 characters", nil)
		}
		user.Bio = input.Bio
	}

	if input.ProfilePic != "" {
		payload, err := utils.ParseImageDataURL(input.ProfilePic)
		if err != nil {
			return nil, errors.BadRequest("Invalid profile picture", err)
		}

		url, err := uc.uploader.UploadFile(ctx, bytes.NewReader(payload.Data), payload.ContentType, "profilePics/"+uid, true)
		if err != nil {
			return nil, errors.Internal("Failed to store profile picture", err)
		}

		if user.ProfilePic != "" {
			if err := uc.uploader.DeleteFile(ctx, user.ProfilePic); err != nil {
				logger.Warn("Failed to delete previous profile picture for %s: %v", uid, err)
			}
		}
		user.ProfilePic = url
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update profile", err)
	}

	return user, nil
}

func (uc *UserUseCase) UpdateTheme(ctx context.Context, uid, theme string) (*entity.User, error) {
	if theme == "" {
		return nil, errors.BadRequest("Theme is required", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.ProfileTheme = theme
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update theme", err)
	}

	return user, nil
}

func (uc *UserUseCase) UpdatePrivacy(ctx context.Context, uid string, input UpdatePrivacyInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.ShowOnlineStatus != nil {
		user.Privacy.ShowOnlineStatus = *input.ShowOnlineStatus
	}
	if input.ReadReceipts != nil {
		user.Privacy.ReadReceipts = *input.ReadReceipts
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update privacy settings", err)
	}

	return user, nil
}

func (uc *UserUseCase) GetUserProfile(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// SearchUsers finds other users by name prefix. An empty query returns an
// empty result rather than the whole user base.
func (uc *UserUseCase) SearchUsers(ctx context.Context, callerID, query string, limit int) ([]*entity.User, error) {
	if query == "" {
		return []*entity.User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	users, err := uc.userRepo.SearchByName(ctx, query, callerID, limit)
	if err != nil {
		return nil, errors.Internal("Failed to search users", err)
	}
	if users == nil {
		users = []*entity.User{}
	}
	return users, nil
}
