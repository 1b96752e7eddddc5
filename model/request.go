package model

import "time"

// Request states. A request only ever moves forward:
// pendiente_jefe -> pendiente_secretario -> aprobada | rechazada,
// or pendiente_jefe -> rechazada directly.
const (
	StatusPendingChief     = "pendiente_jefe"
	StatusPendingSecretary = "pendiente_secretario"
	StatusApproved         = "aprobada"
	StatusRejected         = "rechazada"
)

// Motives. Exactly one per request; MotiveOther carries free text.
const (
	MotiveStudies      = "estudios"
	MotiveMedical      = "cita_medica"
	MotiveLicense      = "licencia"
	MotiveCompensatory = "compensatorio"
	MotiveOther        = "otro"
)

// Motives lists every valid motive value.
var Motives = []string{MotiveStudies, MotiveMedical, MotiveLicense, MotiveCompensatory, MotiveOther}

// Request is an absence request. Requester display fields are
// snapshotted at submission so the document stays historically
// accurate; they are not live-joined from the user record.
type Request struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RequesterID uint      `json:"requester_id" gorm:"column:usuario_id;not null;index"`
	UnitID      *uint     `json:"unit_id,omitempty" gorm:"column:unidad_id;index"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"column:fecha;index"`

	FullName   string `json:"full_name" gorm:"size:255"`
	NationalID string `json:"national_id" gorm:"column:cedula;size:20"`
	JobTitle   string `json:"job_title,omitempty" gorm:"size:255"`
	Office     string `json:"office,omitempty" gorm:"size:255"`
	WorkArea   string `json:"work_area,omitempty" gorm:"size:255"`

	Motive     string `json:"motive" gorm:"size:32;not null"`
	MotiveText string `json:"motive_text,omitempty" gorm:"type:text"`

	// Hour-range span.
	HoursDate *time.Time `json:"hours_date,omitempty" gorm:"type:date"`
	HourStart *string    `json:"hour_start,omitempty" gorm:"size:8"`
	HourEnd   *string    `json:"hour_end,omitempty" gorm:"size:8"`
	HourCount *int       `json:"hour_count,omitempty"`

	// Day-range span.
	DayStart *time.Time `json:"day_start,omitempty" gorm:"type:date"`
	DayEnd   *time.Time `json:"day_end,omitempty" gorm:"type:date"`
	DayCount *int       `json:"day_count,omitempty"`

	RequesterSignature *string `json:"requester_signature,omitempty" gorm:"type:text"`

	// Chief stage audit trail. Populated if and only if the chief has
	// decided.
	ChiefDeciderID   *uint      `json:"chief_decider_id,omitempty"`
	ChiefDecidedAt   *time.Time `json:"chief_decided_at,omitempty"`
	ChiefObservation *string    `json:"chief_observation,omitempty" gorm:"type:text"`
	ChiefSignature   *string    `json:"chief_signature,omitempty" gorm:"type:text"`
	ChiefName        *string    `json:"chief_name,omitempty" gorm:"size:255"`

	// Secretary stage audit trail.
	SecretaryDeciderID   *uint      `json:"secretary_decider_id,omitempty"`
	SecretaryDecidedAt   *time.Time `json:"secretary_decided_at,omitempty"`
	SecretaryObservation *string    `json:"secretary_observation,omitempty" gorm:"type:text"`
	SecretarySignature   *string    `json:"secretary_signature,omitempty" gorm:"type:text"`
	SecretaryName        *string    `json:"secretary_name,omitempty" gorm:"size:255"`

	// Regulation-compliance flag pair, recorded only on secretary
	// approval. Rejection forces both to false.
	CompliesYes bool `json:"complies_yes" gorm:"column:ajusta_ley_si;default:false"`
	CompliesNo  bool `json:"complies_no" gorm:"column:ajusta_ley_no;default:false"`

	Status string `json:"status" gorm:"column:estado;size:32;not null;default:pendiente_jefe;index"`
}

func (Request) TableName() string {
	return "requests"
}

// SubmitRequestInput is the submission payload. The motive comes in as
// the parallel booleans the existing permit form posts; the service
// normalizes them into a single motive value.
type SubmitRequestInput struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	JobTitle   string `json:"job_title"`
	Office     string `json:"office"`
	WorkArea   string `json:"work_area"`

	Studies      bool   `json:"studies"`
	Medical      bool   `json:"medical_appointment"`
	License      bool   `json:"license"`
	Compensatory bool   `json:"compensatory"`
	Other        bool   `json:"other"`
	MotiveText   string `json:"motive_text"`

	HoursDate *time.Time `json:"hours_date"`
	HourStart *string    `json:"hour_start"`
	HourEnd   *string    `json:"hour_end"`
	HourCount *int       `json:"hour_count"`

	DayStart *time.Time `json:"day_start"`
	DayEnd   *time.Time `json:"day_end"`
	DayCount *int       `json:"day_count"`

	RequesterSignature *string `json:"requester_signature"`
}

// ChiefDecisionInput is the first-stage decision payload.
type ChiefDecisionInput struct {
	Approve     *bool   `json:"approve" binding:"required"`
	Observation *string `json:"observation"`
	Signature   *string `json:"signature"`
}

// SecretaryDecisionInput is the second-stage decision payload.
type SecretaryDecisionInput struct {
	Approve         *bool   `json:"approve" binding:"required"`
	CompliesWithLaw bool    `json:"complies_with_law"`
	Observation     *string `json:"observation"`
	Signature       *string `json:"signature"`
}
