package service

import (
	"context"
	"strings"

	"circle/internal/models"
	"circle/internal/repository"
	"circle/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo      repository.UserRepository
	friendService *FriendService
}

// UpdateProfileInput carries the editable profile fields. Empty strings
// leave the stored value untouched.
type UpdateProfileInput struct {
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url"`
	CoverURL      string `json:"cover_url"`
	AboutMe       string `json:"about_me"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Company       string `json:"company"`
	JobTitle      string `json:"job_title"`
	FacebookLink  string `json:"facebook_link"`
	InstagramLink string `json:"instagram_link"`
	LinkedinLink  string `json:"linkedin_link"`
	TwitterLink   string `json:"twitter_link"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, friendService *FriendService) *UserService {
	return &UserService{userRepo: userRepo, friendService: friendService}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validation.ValidateName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account. The same
// unauthorized error covers unknown email and bad password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns a user annotated with the edge between the viewer and
// that user, if any.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*models.UserWithFriendship, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	annotated, err := s.friendService.AnnotateWithFriendships(ctx, viewerID, []models.User{*user})
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// ListUsers returns one page of users, optionally filtered by name, each
// annotated with the viewer's edge to them.
func (s *UserService) ListUsers(ctx context.Context, viewerID uint, name string, page, limit int) (*models.UserPage, error) {
	limit, offset := normalizePage(page, limit)

	count, err := s.userRepo.Count(ctx, name)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, name, limit, offset)
	if err != nil {
		return nil, err
	}

	annotated, err := s.friendService.AnnotateWithFriendships(ctx, viewerID, users)
	if err != nil {
		return nil, err
	}
	return &models.UserPage{
		Users:      annotated,
		TotalPages: totalPages(count, limit),
		Count:      count,
	}, nil
}

// UpdateProfile edits the acting user's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		name := strings.TrimSpace(in.Name)
		if err := validation.ValidateName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = name
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.CoverURL != "" {
		user.CoverURL = in.CoverURL
	}
	if in.AboutMe != "" {
		if len(in.AboutMe) > 500 {
			return nil, models.NewValidationError("About me too long (max 500 characters)")
		}
		user.AboutMe = in.AboutMe
	}
	if in.City != "" {
		user.City = in.City
	}
	if in.Country != "" {
		user.Country = in.Country
	}
	if in.Company != "" {
		user.Company = in.Company
	}
	if in.JobTitle != "" {
		user.JobTitle = in.JobTitle
	}
	if in.FacebookLink != "" {
		user.FacebookLink = in.FacebookLink
	}
	if in.InstagramLink != "" {
		user.InstagramLink = in.InstagramLink
	}
	if in.LinkedinLink != "" {
		user.LinkedinLink = in.LinkedinLink
	}
	if in.TwitterLink != "" {
		user.TwitterLink = in.TwitterLink
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
