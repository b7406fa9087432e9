package domain

import "time"

// AdminRole is a role assignable to admin users
type AdminRole struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(20);not null;uniqueIndex:uq_admin_roles_name" json:"name"`
}

// TableName specifies the table name for AdminRole
func (AdminRole) TableName() string {
	return "admin_roles"
}

// AdminUser is an administrative account. Its id is stamped into
// created_by/updated_by on every mutating operation.
type AdminUser struct {
	BaseModel
	Username  string     `gorm:"type:varchar(50);not null;uniqueIndex:uq_admin_users_username" json:"username"`
	Email     string     `gorm:"type:varchar(100);uniqueIndex:uq_admin_users_email" json:"email"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"`
	RoleID    int64      `gorm:"not null;index:idx_admin_users_role_id" json:"roleId"`
	UpdatedBy *int64     `json:"updatedBy"`
	Role      *AdminRole `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName specifies the table name for AdminUser
func (AdminUser) TableName() string {
	return "admin_users"
}

// User is a public (non-admin) account; it only appears here as the author
// of ratings and items.
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string     `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_username" json:"username"`
	Nickname    string     `gorm:"type:varchar(50)" json:"nickname"`
	Email       string     `gorm:"type:varchar(100);uniqueIndex:uq_users_email" json:"email"`
	Password    string     `gorm:"type:varchar(255)" json:"-"`
	Avatar      string     `gorm:"type:varchar(255)" json:"avatar"`
	Description string     `gorm:"type:varchar(500)" json:"description"`
	Country     string     `gorm:"type:varchar(50)" json:"country"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`
	LoggedInAt  *time.Time `json:"loggedInAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
