// api/audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Entry is one record of the append-only decision trail: who did what
// to which request or unit, and how it came out.
type Entry struct {
	Timestamp     time.Time       `json:"timestamp"`
	ActorID       string          `json:"actor_id"`
	Action        string          `json:"action"`
	ResourceID    string          `json:"resource_id"`
	Outcome       string          `json:"outcome"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}

// Actions recorded by the daos and services.
const (
	ActionSubmitRequest   = "SUBMIT_REQUEST"
	ActionChiefDecide     = "CHIEF_DECIDE"
	ActionSecretaryDecide = "SECRETARY_DECIDE"
	ActionExportDocument  = "EXPORT_DOCUMENT"
	ActionCreateUnit      = "CREATE_UNIT"
	ActionUpdateUnit      = "UPDATE_UNIT"
	ActionAssignChief     = "ASSIGN_CHIEF"
	ActionAssignSecretary = "ASSIGN_SECRETARY"
	ActionRegisterUser    = "REGISTER_USER"
	ActionSetUserStatus   = "SET_USER_STATUS"
)
