package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ProfileInput updates the caller's own profile. Empty fields are left unchanged.
type ProfileInput struct {
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Mobile    string `json:"mobile" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"omitempty,min=6"`
}

// AddressInput is a shipping address request body.
type AddressInput struct {
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	StreetAddress string `json:"streetAddress" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state" validate:"required,max=100"`
	ZipCode       string `json:"zipCode" validate:"required,max=20"`
	Mobile        string `json:"mobile" validate:"required,max=30"`
}

func (in AddressInput) apply(a *models.Address) {
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.StreetAddress = in.StreetAddress
	a.City = in.City
	a.State = in.State
	a.ZipCode = in.ZipCode
	a.Mobile = in.Mobile
}

// UserService covers profiles, addresses and the admin user management screens.
type UserService struct {
	userRepo    repositories.UserRepository
	addressRepo repositories.AddressRepository
	auth        *AuthService
	log         *zap.Logger
}

func NewUserService(userRepo repositories.UserRepository, addressRepo repositories.AddressRepository, auth *AuthService, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{userRepo: userRepo, addressRepo: addressRepo, auth: auth, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(ctx, user, in); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) applyProfile(ctx context.Context, user *models.User, in ProfileInput) error {
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Mobile != "" {
		user.Mobile = in.Mobile
	}
	if in.Email != "" {
		email := in.Email
		if email != user.Email {
			if other, err := s.userRepo.GetByEmail(ctx, email); err == nil && other != nil {
				return fmt.Errorf("email '%s' already registered: %w", email, apperr.ErrConflict)
			}
			user.Email = email
		}
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	return nil
}

// Addresses

func (s *UserService) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

func (s *UserService) AddAddress(ctx context.Context, userID string, in AddressInput) (*models.Address, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	address := &models.Address{UserID: userID}
	in.apply(address)
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID string, in AddressInput) (*models.Address, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	in.apply(address)
	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, addressID)
}

func (s *UserService) ownedAddress(ctx context.Context, userID, addressID string) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("address %s does not belong to user %s: %w", addressID, userID, apperr.ErrAuthorization)
	}
	return address, nil
}

// Admin user management

// CreateFirstAdmin bootstraps the first administrator. It is refused once any admin exists.
func (s *UserService) CreateFirstAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	n, err := s.userRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("an administrator already exists: %w", apperr.ErrConflict)
	}
	return s.createWithRole(ctx, in, models.RoleAdmin)
}

func (s *UserService) CreateAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.createWithRole(ctx, in, models.RoleAdmin)
}

func (s *UserService) CreateCustomer(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.createWithRole(ctx, in, models.RoleCustomer)
}

func (s *UserService) createWithRole(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Mobile:    in.Mobile,
		Role:      role,
	}
	if err := s.auth.createUser(ctx, user, in.Password); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListAdmins(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListByRole(ctx, models.RoleAdmin)
}

// DeleteAdmin removes another administrator. Admins cannot delete themselves.
func (s *UserService) DeleteAdmin(ctx context.Context, actorID, adminID string) error {
	if actorID == adminID {
		return apperr.Invalid("id", "administrators cannot delete their own account")
	}
	if _, err := s.userWithRole(ctx, adminID, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, adminID); err != nil {
		return err
	}
	s.log.Info("Administrator deleted", zap.String("admin_id", adminID), zap.String("by", actorID))
	return nil
}

func (s *UserService) ListCustomers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListByRole(ctx, models.RoleCustomer)
}

func (s *UserService) GetCustomer(ctx context.Context, id string) (*models.User, error) {
	return s.userWithRole(ctx, id, models.RoleCustomer)
}

func (s *UserService) UpdateCustomer(ctx context.Context, id string, in ProfileInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.userWithRole(ctx, id, models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(ctx, user, in); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := s.userWithRole(ctx, id, models.RoleCustomer); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// ToggleBlock flips the blocked flag of a customer and returns the new state.
func (s *UserService) ToggleBlock(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userWithRole(ctx, id, models.RoleCustomer)
	if err != nil {
		return nil, err
	}
	user.Blocked = !user.Blocked
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("Customer block toggled", zap.String("user_id", id), zap.Bool("blocked", user.Blocked))
	return user, nil
}

func (s *UserService) userWithRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("%s user with ID %s: %w", role, id, apperr.ErrNotFound)
	}
	return user, nil
}

// IsNotFound is a small helper for callers that treat absence as a normal outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
