// api/errors/request_errors.go
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound     = errors.New("request not found")
	ErrInvalidRequestData  = errors.New("invalid request data")
	ErrInvalidRequestState = errors.New("request is not in the expected state")
	ErrRequestNotApproved  = errors.New("request is not approved")
	ErrNotChiefOfArea      = errors.New("caller is not the chief of the request's area")
	ErrNotSecretaryOfArea  = errors.New("caller is not the secretary over the request's area")
)

// AuthorizationError carries the diagnostic context echoed back on a
// denied decision so support can see which binding was expected. It
// unwraps to ErrNotChiefOfArea or ErrNotSecretaryOfArea.
type AuthorizationError struct {
	Err            error  `json:"-"`
	RequestID      uint   `json:"request_id"`
	UnitID         uint   `json:"unit_id"`
	UnitName       string `json:"unit_name"`
	ExpectedUserID *uint  `json:"expected_user_id,omitempty"`
	CallerID       uint   `json:"caller_id"`
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%v (request %d, unit %d %q, caller %d)",
		e.Err, e.RequestID, e.UnitID, e.UnitName, e.CallerID)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}
