package model

import "time"

// Board page-size bounds.
const (
	BoardDefaultLimit = 50
	BoardMaxLimit     = 200
)

// BoardFilter is the dashboard query. Scope (which units the caller
// may see at all) is resolved from the caller's bindings before the
// filter is applied; an out-of-authority SecretariatID or UnitID
// yields an empty result, never an error.
type BoardFilter struct {
	SecretariatID *uint      `json:"secretariat_id,omitempty" form:"secretariat_id"`
	UnitID        *uint      `json:"unit_id,omitempty" form:"unit_id"`
	States        []string   `json:"states,omitempty" form:"states"`
	Search        string     `json:"search,omitempty" form:"search"`
	From          *time.Time `json:"from,omitempty" form:"from" time_format:"2006-01-02"`
	To            *time.Time `json:"to,omitempty" form:"to" time_format:"2006-01-02"`
	SortBy        string     `json:"sort_by,omitempty" form:"sort_by"`
	SortOrder     string     `json:"sort_order,omitempty" form:"sort_order"`
	Page          int        `json:"page,omitempty" form:"page"`
	Limit         int        `json:"limit,omitempty" form:"limit"`
}

// UnitBreakdown is the per-unit slice of the board aggregation.
type UnitBreakdown struct {
	UnitID   uint           `json:"unit_id"`
	UnitName string         `json:"unit_name"`
	Total    int            `json:"total"`
	ByState  map[string]int `json:"by_state"`
}

// Pagination describes the returned page. Pages is at least 1 even
// for an empty result.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Board is the aggregated dashboard view. Totals cover the whole
// filtered set, not just the current page.
type Board struct {
	Secretariats []Unit          `json:"secretariats"`
	Units        []Unit          `json:"units"`
	Totals       map[string]int  `json:"totals"`
	ByUnit       []UnitBreakdown `json:"by_unit"`
	Items        []*Request      `json:"items"`
	Pagination   Pagination      `json:"pagination"`
}
