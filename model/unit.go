package model

// Unit lifecycle statuses. Stored as-is, the wire values are the
// Spanish ones the municipal frontend already uses.
const (
	UnitStatusActive   = "activa"
	UnitStatusInactive = "inactiva"
)

// Unit is an organizational unit. A unit without a parent is a
// secretariat (root); a unit with a parent is an area (child). The
// hierarchy is two levels deep.
type Unit struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:255;not null"`
	ParentID    *uint  `json:"parent_id,omitempty" gorm:"index"`
	SecretaryID *uint  `json:"secretary_id,omitempty"`
	ChiefID     *uint  `json:"chief_id,omitempty"`
	Status      string `json:"status" gorm:"size:16;default:activa"`

	Parent   *Unit  `json:"-" gorm:"foreignKey:ParentID"`
	Children []Unit `json:"-" gorm:"foreignKey:ParentID"`
}

func (Unit) TableName() string {
	return "units"
}

// IsRoot reports whether the unit is a secretariat.
func (u *Unit) IsRoot() bool {
	return u.ParentID == nil
}

// IsActive reports whether the unit is selectable for new
// registrations and assignments.
func (u *Unit) IsActive() bool {
	return u.Status == UnitStatusActive
}

// UnitPatch is a partial update of a unit. Nil fields are left alone.
type UnitPatch struct {
	Name     *string `json:"name,omitempty"`
	Status   *string `json:"status,omitempty"`
	ParentID *uint   `json:"parent_id,omitempty"`
}

// UnitFilter restricts a unit listing.
type UnitFilter struct {
	ActiveOnly bool
	RootsOnly  bool
	ParentID   *uint
}
