// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/alcaldia-digital/ausentismo/api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateUnit(unit model.Unit) error {
	if unit.Name == "" {
		return fmt.Errorf("unit name cannot be empty")
	}
	if unit.Status != model.UnitStatusActive && unit.Status != model.UnitStatusInactive {
		return fmt.Errorf("unit status must be either %q or %q", model.UnitStatusActive, model.UnitStatusInactive)
	}
	return nil
}

func (v *ValidationUtil) ValidateUnitStatus(status string) error {
	if status != model.UnitStatusActive && status != model.UnitStatusInactive {
		return fmt.Errorf("unit status must be either %q or %q", model.UnitStatusActive, model.UnitStatusInactive)
	}
	return nil
}

func (v *ValidationUtil) ValidateUserStatus(status string) error {
	if status != model.UserStatusActive && status != model.UserStatusInactive {
		return fmt.Errorf("user status must be either %q or %q", model.UserStatusActive, model.UserStatusInactive)
	}
	return nil
}

func (v *ValidationUtil) ValidateRegistration(name, username, password, nationalID string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if nationalID == "" {
		return fmt.Errorf("national id cannot be empty")
	}
	return nil
}

// ValidateMotive checks that exactly one motive flag is set and
// returns the corresponding motive value.
func (v *ValidationUtil) ValidateMotive(input model.SubmitRequestInput) (string, error) {
	motive := ""
	count := 0
	for value, set := range map[string]bool{
		model.MotiveStudies:      input.Studies,
		model.MotiveMedical:      input.Medical,
		model.MotiveLicense:      input.License,
		model.MotiveCompensatory: input.Compensatory,
		model.MotiveOther:        input.Other,
	} {
		if set {
			motive = value
			count++
		}
	}
	if count == 0 {
		return "", fmt.Errorf("a motive must be selected")
	}
	if count > 1 {
		return "", fmt.Errorf("only one motive may be selected")
	}
	return motive, nil
}
