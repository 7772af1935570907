package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"
	"FoodLoop-Backend/internal/utils/mailing"
	"FoodLoop-Backend/pkg/jwt"
	"FoodLoop-Backend/pkg/ledger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserResponse, error)
		BootstrapDemoUser(ctx context.Context) (*domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		ledgerService  ledger.LedgerService
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, ledgerService ledger.LedgerService, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		ledgerService:  ledgerService,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.ledgerService.GetOrCreateAccount(ctx, user.ID.String()); err != nil {
		return nil, err
	}

	// Welcome mail is best effort, registration must not fail on SMTP trouble.
	go func() {
		body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to FoodLoop! Report surplus food, collect waste, and earn points.</p>", user.Name)
		if err := mailing.SendMail(user.Email, "Welcome to FoodLoop", body); err != nil {
			log.Printf("failed to send welcome mail to %s: %v", user.Email, err)
		}
	}()

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	response := toUserResponse(user)
	return &response, nil
}

// BootstrapDemoUser makes sure the demo account exists so the app is usable
// straight after deploy. Safe to call repeatedly.
func (s *userService) BootstrapDemoUser(ctx context.Context) (*domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, domain.DemoUserEmail)
	if err == nil {
		response := toUserResponse(user)
		return &response, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = &entities.User{
		ID:       uuid.New(),
		Email:    domain.DemoUserEmail,
		Name:     domain.DemoUserName,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.ledgerService.GetOrCreateAccount(ctx, user.ID.String()); err != nil {
		return nil, err
	}

	response := toUserResponse(user)
	return &response, nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
