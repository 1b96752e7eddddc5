// api/service/board_service.go
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/alcaldia-digital/ausentismo/api/dao"
	"github.com/alcaldia-digital/ausentismo/api/model"
	helper "github.com/alcaldia-digital/ausentismo/api/util/helper"
)

// IBoardService computes the role-scoped dashboard.
type IBoardService interface {
	GetBoard(ctx context.Context, callerID uint, username string, filter model.BoardFilter) (*model.Board, error)
}

// BoardService resolves the caller's visible scope from their
// bindings, then filters, aggregates, sorts, and paginates in memory.
// Out-of-authority scope selections yield an empty board, never an
// error.
type BoardService struct {
	unitDAO    dao.IUnitDAO
	requestDAO dao.IRequestDAO
	userDAO    dao.IUserDAO
	identity   IIdentityService
}

var _ IBoardService = &BoardService{}

// NewBoardService creates a new instance of BoardService
func NewBoardService(unitDAO dao.IUnitDAO, requestDAO dao.IRequestDAO, userDAO dao.IUserDAO, identity IIdentityService) *BoardService {
	return &BoardService{
		unitDAO:    unitDAO,
		requestDAO: requestDAO,
		userDAO:    userDAO,
		identity:   identity,
	}
}

// boardScope is what the caller may see: the selectable secretariats,
// the areas in scope after the secretariat filter, and whether item
// scope is the whole system (admin with no filter).
type boardScope struct {
	secretariats []*model.Unit
	units        []*model.Unit
	everything   bool
}

func (s *BoardService) GetBoard(ctx context.Context, callerID uint, username string, filter model.BoardFilter) (*model.Board, error) {
	scope, err := s.resolveScope(ctx, callerID, username, filter.SecretariatID)
	if err != nil {
		return nil, err
	}

	// A unit filter narrows the scope; a unit outside it empties the
	// board rather than erroring.
	if filter.UnitID != nil && !scope.everything {
		var kept []*model.Unit
		for _, u := range scope.units {
			if u.ID == *filter.UnitID {
				kept = append(kept, u)
			}
		}
		scope.units = kept
	}

	var items []*model.Request
	switch {
	case scope.everything && filter.UnitID != nil:
		items, err = s.requestDAO.ListByUnits(ctx, []uint{*filter.UnitID}, nil)
	case scope.everything:
		items, err = s.requestDAO.ListAll(ctx)
	default:
		items, err = s.requestDAO.ListByUnits(ctx, unitIDs(scope.units), nil)
	}
	if err != nil {
		return nil, err
	}

	items, err = s.applyFilters(ctx, items, filter)
	if err != nil {
		return nil, err
	}

	sortItems(items, filter.SortBy, filter.SortOrder)

	totals := make(map[string]int)
	for _, r := range items {
		totals[r.Status]++
	}
	byUnit, err := s.breakdownByUnit(ctx, items, scope)
	if err != nil {
		return nil, err
	}

	page, limit := helper.ClampBoardPage(filter.Page, filter.Limit)
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	board := &model.Board{
		Secretariats: dereferenceUnits(scope.secretariats),
		Units:        dereferenceUnits(scope.units),
		Totals:       totals,
		ByUnit:       byUnit,
		Items:        items[start:end],
		Pagination: model.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: helper.PageCount(total, limit),
		},
	}
	return board, nil
}

// resolveScope maps the caller's role onto the units they may see.
func (s *BoardService) resolveScope(ctx context.Context, callerID uint, username string, secretariatID *uint) (*boardScope, error) {
	if s.identity.IsAdmin(username) {
		return s.adminScope(ctx, secretariatID)
	}

	owned, err := s.unitDAO.UnitsSecretariedBy(ctx, callerID)
	if err != nil {
		return nil, err
	}
	chiefed, err := s.unitDAO.UnitsChiefedBy(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if len(owned) == 0 && len(chiefed) == 0 {
		// No binding anywhere: the dashboard is not for employees.
		return &boardScope{}, nil
	}

	// Selectable secretariats: owned roots plus the parents of chiefed
	// areas, deduplicated.
	secretariats := append([]*model.Unit{}, owned...)
	ownedSet := make(map[uint]bool, len(owned))
	for _, u := range owned {
		ownedSet[u.ID] = true
	}
	seen := make(map[uint]bool, len(owned))
	for _, u := range owned {
		seen[u.ID] = true
	}
	for _, area := range chiefed {
		if area.ParentID == nil || seen[*area.ParentID] {
			continue
		}
		parent, err := s.unitDAO.GetUnit(ctx, *area.ParentID)
		if err != nil {
			return nil, err
		}
		seen[parent.ID] = true
		secretariats = append(secretariats, parent)
	}

	var units []*model.Unit
	switch {
	case secretariatID == nil:
		// Children of every owned secretariat, unioned with chiefed
		// areas.
		children, err := s.unitDAO.ChildrenOfAll(ctx, unitIDs(owned))
		if err != nil {
			return nil, err
		}
		units = unionUnits(children, chiefed)
	case ownedSet[*secretariatID]:
		children, err := s.unitDAO.ChildrenOf(ctx, *secretariatID)
		if err != nil {
			return nil, err
		}
		units = children
	default:
		// Not theirs directly; keep only chiefed areas under the
		// selected secretariat. Anything else fails closed to empty.
		for _, area := range chiefed {
			if area.ParentID != nil && *area.ParentID == *secretariatID {
				units = append(units, area)
			}
		}
	}

	return &boardScope{secretariats: secretariats, units: units}, nil
}

func (s *BoardService) adminScope(ctx context.Context, secretariatID *uint) (*boardScope, error) {
	secretariats, err := s.unitDAO.ListUnits(ctx, model.UnitFilter{RootsOnly: true})
	if err != nil {
		return nil, err
	}
	if secretariatID == nil {
		return &boardScope{secretariats: secretariats, everything: true}, nil
	}
	units, err := s.unitDAO.ChildrenOf(ctx, *secretariatID)
	if err != nil {
		return nil, err
	}
	return &boardScope{secretariats: secretariats, units: units}, nil
}

// applyFilters narrows the scoped item list: state-set membership,
// token search over requester name/login/national-id/motive text, and
// the inclusive submission-date range with an end-of-day upper bound.
func (s *BoardService) applyFilters(ctx context.Context, items []*model.Request, filter model.BoardFilter) ([]*model.Request, error) {
	if len(filter.States) > 0 {
		wanted := make(map[string]bool, len(filter.States))
		for _, st := range filter.States {
			wanted[st] = true
		}
		items = keepRequests(items, func(r *model.Request) bool { return wanted[r.Status] })
	}

	if filter.From != nil {
		from := *filter.From
		items = keepRequests(items, func(r *model.Request) bool { return !r.SubmittedAt.Before(from) })
	}
	if filter.To != nil {
		endOfDay := time.Date(filter.To.Year(), filter.To.Month(), filter.To.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), filter.To.Location())
		items = keepRequests(items, func(r *model.Request) bool { return !r.SubmittedAt.After(endOfDay) })
	}

	tokens := strings.Fields(strings.ToLower(filter.Search))
	if len(tokens) > 0 {
		logins, err := s.requesterLogins(ctx, items)
		if err != nil {
			return nil, err
		}
		items = keepRequests(items, func(r *model.Request) bool {
			fields := []string{
				strings.ToLower(r.FullName),
				strings.ToLower(logins[r.RequesterID]),
				strings.ToLower(r.NationalID),
				strings.ToLower(r.Motive),
				strings.ToLower(r.MotiveText),
			}
			// Every token must match at least one field.
			for _, token := range tokens {
				matched := false
				for _, field := range fields {
					if strings.Contains(field, token) {
						matched = true
						break
					}
				}
				if !matched {
					return false
				}
			}
			return true
		})
	}

	return items, nil
}

func (s *BoardService) requesterLogins(ctx context.Context, items []*model.Request) (map[uint]string, error) {
	logins := make(map[uint]string)
	for _, r := range items {
		if _, ok := logins[r.RequesterID]; ok {
			continue
		}
		user, err := s.userDAO.GetUser(ctx, r.RequesterID)
		if err != nil {
			// A requester deleted out-of-band just doesn't match login
			// searches.
			logins[r.RequesterID] = ""
			continue
		}
		logins[r.RequesterID] = user.Username
	}
	return logins, nil
}

func (s *BoardService) breakdownByUnit(ctx context.Context, items []*model.Request, scope *boardScope) ([]model.UnitBreakdown, error) {
	names := make(map[uint]string)
	for _, u := range scope.units {
		names[u.ID] = u.Name
	}

	grouped := make(map[uint]*model.UnitBreakdown)
	var order []uint
	for _, r := range items {
		if r.UnitID == nil {
			continue
		}
		id := *r.UnitID
		entry, ok := grouped[id]
		if !ok {
			name, known := names[id]
			if !known {
				unit, err := s.unitDAO.GetUnit(ctx, id)
				if err == nil {
					name = unit.Name
				}
				names[id] = name
			}
			entry = &model.UnitBreakdown{UnitID: id, UnitName: name, ByState: make(map[string]int)}
			grouped[id] = entry
			order = append(order, id)
		}
		entry.Total++
		entry.ByState[r.Status]++
	}

	breakdown := make([]model.UnitBreakdown, 0, len(order))
	for _, id := range order {
		breakdown = append(breakdown, *grouped[id])
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total > breakdown[j].Total
	})
	return breakdown, nil
}

// sortItems orders by the whitelisted keys only; anything else falls
// back to submission date, descending by default.
func sortItems(items []*model.Request, sortBy, sortOrder string) {
	asc := strings.EqualFold(sortOrder, "asc")

	var less func(a, b *model.Request) bool
	switch sortBy {
	case "id":
		less = func(a, b *model.Request) bool { return a.ID < b.ID }
	case "estado":
		less = func(a, b *model.Request) bool { return a.Status < b.Status }
	default:
		less = func(a, b *model.Request) bool { return a.SubmittedAt.Before(b.SubmittedAt) }
	}

	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}

func keepRequests(items []*model.Request, keep func(*model.Request) bool) []*model.Request {
	out := items[:0]
	for _, r := range items {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func unionUnits(a, b []*model.Unit) []*model.Unit {
	seen := make(map[uint]bool, len(a)+len(b))
	var out []*model.Unit
	for _, u := range append(append([]*model.Unit{}, a...), b...) {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		out = append(out, u)
	}
	return out
}

func dereferenceUnits(units []*model.Unit) []model.Unit {
	out := make([]model.Unit, 0, len(units))
	for _, u := range units {
		out = append(out, *u)
	}
	return out
}
