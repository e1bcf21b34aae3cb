package model

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/result"
	"github.com/svera/camposanto/internal/sentinel"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (u *UserRepository) Create(user *User) error {
	if result := u.DB.Create(user); result.Error != nil {
		log.Errorf("error creating user: %s", result.Error)
		return result.Error
	}
	return nil
}

func (u *UserRepository) Update(user *User) error {
	if result := u.DB.Save(user); result.Error != nil {
		log.Errorf("error updating user: %s", result.Error)
		return result.Error
	}
	return nil
}

func (u *UserRepository) List(page int, resultsPerPage int, filter string) (result.Paginated[[]User], error) {
	var users []User

	matching := func(db *gorm.DB) *gorm.DB {
		if filter == "" {
			return db
		}
		return db.Where("name LIKE ? OR email LIKE ?", "%"+filter+"%", "%"+filter+"%")
	}

	var totalRows int64
	if res := u.DB.Model(&User{}).Scopes(matching).Count(&totalRows); res.Error != nil {
		log.Errorf("error counting users: %s", res.Error)
		return result.Paginated[[]User]{}, res.Error
	}

	res := u.DB.Scopes(matching, Paginate(page, resultsPerPage)).Order("email ASC").Find(&users)
	if res.Error != nil {
		log.Errorf("error listing users: %s", res.Error)
		return result.Paginated[[]User]{}, res.Error
	}

	return result.NewPaginated(
		resultsPerPage,
		page,
		int(totalRows),
		users,
	), nil
}

// Admins returns the number of active admins
func (u *UserRepository) Admins() int64 {
	var totalRows int64
	u.DB.Model(&User{}).Where("role = ? AND active = ?", RoleAdmin, true).Count(&totalRows)
	return totalRows
}

func (u *UserRepository) Delete(uuid string) error {
	result := u.DB.Where("uuid = ?", uuid).Delete(&User{})
	if result.Error != nil {
		log.Errorf("error deleting user: %s", result.Error)
		return result.Error
	}
	return nil
}

func (u *UserRepository) FindByRecoverySelector(selector string) (*User, error) {
	if selector == "" {
		return nil, notFound(gorm.ErrRecordNotFound, "user")
	}
	return u.find("recovery_selector", selector)
}

// ResetPassword stores a new password hash and consumes the recovery link the
// user was found with. It fails with sentinel.ErrConflict if that link was
// consumed or replaced in the meantime.
func (u *UserRepository) ResetPassword(user *User, passwordHash string) error {
	result := u.DB.Model(&User{}).
		Where("id = ? AND recovery_selector = ?", user.ID, user.RecoverySelector).
		Updates(map[string]any{
			"password_hash":        passwordHash,
			"must_change_password": false,
			"recovery_selector":    "",
			"recovery_token_salt":  "",
			"recovery_token_hash":  "",
			"recovery_valid_until": nil,
		})
	if result.Error != nil {
		log.Errorf("error resetting password: %s", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return sentinel.ErrConflict
	}

	user.PasswordHash = passwordHash
	user.MustChangePassword = false
	user.RecoverySelector = ""
	user.RecoveryTokenSalt = ""
	user.RecoveryTokenHash = ""
	user.RecoveryValidUntil = nil
	return nil
}

func (u *UserRepository) FindByEmail(email string) (*User, error) {
	return u.find("email", NormalizeEmail(email))
}

func (u *UserRepository) FindByUuid(uuid string) (*User, error) {
	return u.find("uuid", uuid)
}

func (u *UserRepository) Total() int64 {
	var totalRows int64
	u.DB.Model(&User{}).Count(&totalRows)
	return totalRows
}

func (u *UserRepository) find(field, value string) (*User, error) {
	var user User

	result := u.DB.Where(field+" = ?", value).First(&user)
	if result.Error != nil {
		return nil, notFound(result.Error, "user")
	}
	return &user, nil
}
