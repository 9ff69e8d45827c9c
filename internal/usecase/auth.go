package usecase

import (
	"context"
	"errors"
	"fmt"

	"codelearn-backend/internal/domain"
	"codelearn-backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type authUsecase struct {
	userRepo domain.UserRepository
	otpRepo  domain.OTPRepository
}

func NewAuthUsecase(ur domain.UserRepository, or domain.OTPRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: ur, otpRepo: or}
}

// SendOTP issues a verification code for registration or password reset.
// Registration codes require the email to be unused, reset codes require
// an existing account.
func (uc *authUsecase) SendOTP(ctx context.Context, email, otpType string) error {
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	switch otpType {
	case "register":
		if existing != nil {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	case "reset":
		if existing == nil {
			return fmt.Errorf("%w: no account with that email", domain.ErrNotFound)
		}
	default:
		return fmt.Errorf("%w: unknown otp type %q", domain.ErrValidation, otpType)
	}

	if err := uc.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	code := utils.GenerateOTP()
	if err := uc.otpRepo.Create(ctx, &domain.OTP{Email: email, Code: code}); err != nil {
		return err
	}

	go utils.SendEmail(email, "Your CodeLearn verification code", "Your verification code is: "+code)
	return nil
}

func (uc *authUsecase) VerifyOTP(ctx context.Context, email, code string) error {
	_, err := uc.otpRepo.GetByEmailAndCode(ctx, email, code)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: invalid or expired code", domain.ErrValidation)
	}
	if err != nil {
		return err
	}
	return uc.otpRepo.DeleteByEmail(ctx, email)
}

func (uc *authUsecase) Register(ctx context.Context, user *domain.User) error {
	existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}

	return uc.userRepo.Create(ctx, user)
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	return utils.GenerateJWT(user.ID.Hex(), string(user.Role))
}

func (uc *authUsecase) ResetPassword(ctx context.Context, email, password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, email, hashed)
}

func (uc *authUsecase) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *authUsecase) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, password string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if name != "" {
		user.Name = name
	}
	if password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}

	return uc.userRepo.Update(ctx, user)
}

func (uc *authUsecase) UpdateProfilePic(ctx context.Context, userID primitive.ObjectID, picURL string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.ProfilePic = picURL
	return uc.userRepo.Update(ctx, user)
}
