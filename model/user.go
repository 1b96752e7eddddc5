package model

// User lifecycle statuses.
const (
	UserStatusActive   = "activo"
	UserStatusInactive = "inactivo"
)

// Effective roles. Never stored; resolved from directory bindings and
// the administrator allow-list on every login and "who am I" query.
const (
	RoleAdmin     = "admin"
	RoleSecretary = "secretario"
	RoleChief     = "jefe"
	RoleEmployee  = "empleado"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Username     string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"column:password;size:255;not null"`
	NationalID   string `json:"national_id" gorm:"column:cedula;size:20;not null;uniqueIndex"`
	UnitID       *uint  `json:"unit_id,omitempty"`
	Status       string `json:"status" gorm:"size:16;default:activo"`

	Unit *Unit `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Profile is the "who am I" view: the user plus the resolved
// secretariat/area names for their unit.
type Profile struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	Name        string  `json:"name"`
	NationalID  string  `json:"national_id"`
	UnitID      *uint   `json:"unit_id,omitempty"`
	Secretariat *string `json:"secretariat,omitempty"`
	Area        *string `json:"area,omitempty"`
}

// UserListing is the administrative view of a user, carrying the
// composite role label ("secretario+jefe" when both bindings hold).
type UserListing struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	NationalID string `json:"national_id"`
	UnitID     *uint  `json:"unit_id,omitempty"`
	Status     string `json:"status"`
	RoleLabel  string `json:"role"`
}
