package model

// User table users
type User struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName     string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"          json:"email"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"           json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"`
	Timestamps
}

// TableName table name
func (User) TableName() string { return "users" }

// IsStudent reports role == student
func (u *User) IsStudent() bool { return u.Role == RoleStudent }
