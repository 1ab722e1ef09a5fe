package repositories

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create creates a new user. A duplicate email is reported as a conflict.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	return wrapErr(r.db.WithContext(ctx).Create(user).Error, "failed to create user %s", user.Email)
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err, "user with email %s", email)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err, "user with ID %s", id)
	}
	return &user, nil
}

func (r *GORMUserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("created_at, id").Find(&users).Error; err != nil {
		return nil, wrapErr(err, "failed to list %s users", role)
	}
	return users, nil
}

func (r *GORMUserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, wrapErr(err, "failed to count %s users", role)
	}
	return n, nil
}

// Update saves every column of an existing user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Save(user)
	if res.Error != nil {
		return wrapErr(res.Error, "failed to update user %s", user.ID)
	}
	return nil
}

// Delete removes the user together with their cart and addresses.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return wrapErr(res.Error, "failed to delete user %s", id)
		}
		if res.RowsAffected == 0 {
			return notFound("user with ID %s", id)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return wrapErr(err, "failed to delete cart items of user %s", id)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Cart{}).Error; err != nil {
			return wrapErr(err, "failed to delete cart of user %s", id)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.WishlistItem{}).Error; err != nil {
			return wrapErr(err, "failed to delete wishlist of user %s", id)
		}
		return nil
	})
}

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{db: db}
}

func (r *GORMAddressRepository) Create(ctx context.Context, address *models.Address) error {
	return wrapErr(r.db.WithContext(ctx).Create(address).Error, "failed to create address")
}

func (r *GORMAddressRepository) GetByID(ctx context.Context, id string) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err, "address with ID %s", id)
	}
	return &address, nil
}

func (r *GORMAddressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at, id").Find(&addresses).Error; err != nil {
		return nil, wrapErr(err, "failed to list addresses of user %s", userID)
	}
	return addresses, nil
}

func (r *GORMAddressRepository) Update(ctx context.Context, address *models.Address) error {
	return wrapErr(r.db.WithContext(ctx).Save(address).Error, "failed to update address %s", address.ID)
}

// Delete removes an address. Addresses referenced by an order are kept and
// reported as a conflict.
func (r *GORMAddressRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var used int64
		if err := tx.Model(&models.Order{}).Where("shipping_address_id = ?", id).Count(&used).Error; err != nil {
			return wrapErr(err, "failed to check usage of address %s", id)
		}
		if used > 0 {
			return conflict("address %s is used by %d order(s)", id, used)
		}
		res := tx.Delete(&models.Address{}, "id = ?", id)
		if res.Error != nil {
			return wrapErr(res.Error, "failed to delete address %s", id)
		}
		if res.RowsAffected == 0 {
			return notFound("address with ID %s", id)
		}
		return nil
	})
}
