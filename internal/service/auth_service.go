package service

import (
	"errors"

	"vigil/config"
	"vigil/internal/auth"
	"vigil/internal/domain"
	"vigil/internal/models"
	"vigil/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
	ErrBadRole        = errors.New("role must be GUARD or CLIENT")
)

type AuthService struct {
	cfg        *config.Config
	db         *gorm.DB
	userRepo   *repository.UserRepository
	guardRepo  *repository.GuardRepository
	clientRepo *repository.ClientRepository
}

func NewAuthService(cfg *config.Config, db *gorm.DB, userRepo *repository.UserRepository, guardRepo *repository.GuardRepository, clientRepo *repository.ClientRepository) *AuthService {
	return &AuthService{cfg: cfg, db: db, userRepo: userRepo, guardRepo: guardRepo, clientRepo: clientRepo}
}

func (s *AuthService) checkUnique(email, username string) error {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	_, err = s.userRepo.GetByUsername(username)
	if err == nil {
		return ErrUsernameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// RegisterCompany signs up a new security company with its first admin user.
func (s *AuthService) RegisterCompany(companyName, email, username, password string) (*models.User, string, string, error) {
	if err := s.checkUnique(email, username); err != nil {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		company := models.Company{Name: companyName}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		u.CompanyID = company.ID
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.tokens(u)
	return u, access, refresh, err
}

// CreateUser lets an admin provision a guard or client account in their
// company. The matching profile row is created alongside the user.
func (s *AuthService) CreateUser(companyID uint, email, username, password, role, badgeOrOrg string) (*models.User, error) {
	if role != domain.RoleGuard && role != domain.RoleClient {
		return nil, ErrBadRole
	}
	if err := s.checkUnique(email, username); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		CompanyID:    companyID,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, err
	}
	if role == domain.RoleGuard {
		err = s.guardRepo.Create(&models.GuardProfile{
			UserID:      u.ID,
			CompanyID:   companyID,
			BadgeNumber: badgeOrOrg,
			IsActive:    true,
		})
	} else {
		err = s.clientRepo.Create(&models.ClientProfile{
			UserID:       u.ID,
			CompanyID:    companyID,
			Organization: badgeOrOrg,
		})
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, refresh, err := s.tokens(u)
	return u, access, refresh, err
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.CompanyID, u.Email, u.Role)
}

func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

func (s *AuthService) tokens(u *models.User) (string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.CompanyID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return access, "", err
	}
	return access, refresh, nil
}
