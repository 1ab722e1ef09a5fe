package models

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is a customer or an administrator. Password holds the bcrypt hash.
type User struct {
	Base
	FirstName string `json:"firstName" gorm:"type:varchar(100)"`
	LastName  string `json:"lastName" gorm:"type:varchar(100)"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string `json:"-" gorm:"type:varchar(255);not null"`
	Mobile    string `json:"mobile" gorm:"type:varchar(30)"`
	Role      Role   `json:"role" gorm:"type:varchar(20);index;not null"`
	Blocked   bool   `json:"blocked" gorm:"not null"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Address is a shipping address owned by one user.
type Address struct {
	Base
	UserID        string `json:"userId" gorm:"type:varchar(36);index;not null"`
	FirstName     string `json:"firstName" gorm:"type:varchar(100)"`
	LastName      string `json:"lastName" gorm:"type:varchar(100)"`
	StreetAddress string `json:"streetAddress" gorm:"type:varchar(255)"`
	City          string `json:"city" gorm:"type:varchar(100)"`
	State         string `json:"state" gorm:"type:varchar(100)"`
	ZipCode       string `json:"zipCode" gorm:"type:varchar(20)"`
	Mobile        string `json:"mobile" gorm:"type:varchar(30)"`
}
