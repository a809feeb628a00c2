package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null" json:"role"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Education string    `json:"education,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (user *User) BeforeCreate(*gorm.DB) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return nil
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}

// Profile carries the user fields a client may set. Nil fields are left
// untouched on update.
type Profile struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Education *string `json:"education"`
	LinkedIn  *string `json:"linkedin"`
	Image     *string `json:"image"`
}

// Columns maps the supplied fields to their column names.
func (profile Profile) Columns() map[string]any {
	columns := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			columns[column] = *value
		}
	}
	set("name", profile.Name)
	set("phone", profile.Phone)
	set("address", profile.Address)
	set("education", profile.Education)
	set("linked_in", profile.LinkedIn)
	set("image", profile.Image)
	return columns
}

// Apply copies the supplied fields onto user.
func (profile Profile) Apply(user *User) {
	if profile.Name != nil {
		user.Name = *profile.Name
	}
	if profile.Phone != nil {
		user.Phone = *profile.Phone
	}
	if profile.Address != nil {
		user.Address = *profile.Address
	}
	if profile.Education != nil {
		user.Education = *profile.Education
	}
	if profile.LinkedIn != nil {
		user.LinkedIn = *profile.LinkedIn
	}
	if profile.Image != nil {
		user.Image = *profile.Image
	}
}
