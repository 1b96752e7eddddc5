package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcaldia-digital/ausentismo/api/model"
)

// boardFixture builds a small city: two secretariats with two areas
// each, one secretary, one chief, and one employee per area.
type boardFixture struct {
	unitDAO    *fakeUnitDAO
	userDAO    *fakeUserDAO
	requestDAO *fakeRequestDAO
	service    *BoardService

	admin     *model.User
	secretary *model.User
	chief     *model.User

	hacienda  *model.Unit
	gobierno  *model.Unit
	tesoreria *model.Unit
	catastro  *model.Unit
	prensa    *model.Unit
	archivo   *model.Unit
}

func newBoardFixture() *boardFixture {
	f := &boardFixture{
		unitDAO:    newFakeUnitDAO(),
		userDAO:    newFakeUserDAO(),
		requestDAO: newFakeRequestDAO(),
	}

	f.admin = f.userDAO.put(model.User{Name: "Ana Admin", Username: "ana.admin", NationalID: "1"})
	f.secretary = f.userDAO.put(model.User{Name: "Maria Secretaria", Username: "maria", NationalID: "2"})
	f.chief = f.userDAO.put(model.User{Name: "Pedro Jefe", Username: "pedro", NationalID: "3"})

	f.hacienda = f.unitDAO.put(model.Unit{Name: "Hacienda", SecretaryID: &f.secretary.ID})
	f.gobierno = f.unitDAO.put(model.Unit{Name: "Gobierno"})
	f.tesoreria = f.unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &f.hacienda.ID})
	f.catastro = f.unitDAO.put(model.Unit{Name: "Catastro", ParentID: &f.hacienda.ID})
	f.prensa = f.unitDAO.put(model.Unit{Name: "Prensa", ParentID: &f.gobierno.ID, ChiefID: &f.chief.ID})
	f.archivo = f.unitDAO.put(model.Unit{Name: "Archivo", ParentID: &f.gobierno.ID})

	identity := NewIdentityService(f.unitDAO, NewAdminList([]string{"ana.admin"}))
	f.service = NewBoardService(f.unitDAO, f.requestDAO, f.userDAO, identity)
	return f
}

// seed drops a request into a unit with the given state.
func (f *boardFixture) seed(unit *model.Unit, requester *model.User, state string, submittedAt time.Time) *model.Request {
	return f.requestDAO.put(model.Request{
		RequesterID: requester.ID,
		UnitID:      &unit.ID,
		SubmittedAt: submittedAt,
		FullName:    requester.Name,
		NationalID:  requester.NationalID,
		Motive:      model.MotiveMedical,
		Status:      state,
	})
}

func (f *boardFixture) employee(name, username, nationalID string, unit *model.Unit) *model.User {
	return f.userDAO.put(model.User{Name: name, Username: username, NationalID: nationalID, UnitID: &unit.ID})
}

func TestBoard_AdminSeesEverything(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	reporter := f.employee("Rosa Reportera", "rosa", "11", f.prensa)
	now := time.Now()
	f.seed(f.tesoreria, worker, model.StatusPendingChief, now)
	f.seed(f.prensa, reporter, model.StatusApproved, now)

	board, err := f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin", model.BoardFilter{})
	require.NoError(t, err)

	assert.Len(t, board.Items, 2)
	assert.Equal(t, 1, board.Totals[model.StatusPendingChief])
	assert.Equal(t, 1, board.Totals[model.StatusApproved])
	// Both roots are selectable for an admin.
	require.Len(t, board.Secretariats, 2)
}

func TestBoard_AdminSecretariatFilter(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	reporter := f.employee("Rosa Reportera", "rosa", "11", f.prensa)
	now := time.Now()
	f.seed(f.tesoreria, worker, model.StatusPendingChief, now)
	f.seed(f.prensa, reporter, model.StatusApproved, now)

	board, err := f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin",
		model.BoardFilter{SecretariatID: &f.hacienda.ID})
	require.NoError(t, err)

	require.Len(t, board.Items, 1)
	require.NotNil(t, board.Items[0].UnitID)
	assert.Equal(t, f.tesoreria.ID, *board.Items[0].UnitID)
}

func TestBoard_SecretaryScopeIsOwnChildren(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	reporter := f.employee("Rosa Reportera", "rosa", "11", f.prensa)
	now := time.Now()
	inScope := f.seed(f.tesoreria, worker, model.StatusPendingSecretary, now)
	f.seed(f.prensa, reporter, model.StatusPendingSecretary, now)

	board, err := f.service.GetBoard(context.Background(), f.secretary.ID, "maria", model.BoardFilter{})
	require.NoError(t, err)

	require.Len(t, board.Items, 1)
	assert.Equal(t, inScope.ID, board.Items[0].ID)
	// Scope surfaces both children even when only one has traffic.
	assert.Len(t, board.Units, 2)
	require.Len(t, board.Secretariats, 1)
	assert.Equal(t, f.hacienda.ID, board.Secretariats[0].ID)
}

func TestBoard_ChiefScopeIsChiefedAreas(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	reporter := f.employee("Rosa Reportera", "rosa", "11", f.prensa)
	now := time.Now()
	f.seed(f.tesoreria, worker, model.StatusPendingChief, now)
	mine := f.seed(f.prensa, reporter, model.StatusPendingChief, now)

	board, err := f.service.GetBoard(context.Background(), f.chief.ID, "pedro", model.BoardFilter{})
	require.NoError(t, err)

	require.Len(t, board.Items, 1)
	assert.Equal(t, mine.ID, board.Items[0].ID)
	// The parent of the chiefed area is selectable.
	require.Len(t, board.Secretariats, 1)
	assert.Equal(t, f.gobierno.ID, board.Secretariats[0].ID)
}

func TestBoard_EmployeeGetsEmptyBoard(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	f.seed(f.tesoreria, worker, model.StatusPendingChief, time.Now())

	board, err := f.service.GetBoard(context.Background(), worker.ID, "juan", model.BoardFilter{})
	require.NoError(t, err)

	assert.Empty(t, board.Items)
	assert.Empty(t, board.Secretariats)
	assert.Empty(t, board.Units)
	assert.Equal(t, 0, board.Pagination.Total)
	assert.Equal(t, 1, board.Pagination.Pages)
}

func TestBoard_OutOfScopeSecretariatFailsClosed(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	f.seed(f.tesoreria, worker, model.StatusPendingChief, time.Now())

	// Maria holds Hacienda, not Gobierno.
	board, err := f.service.GetBoard(context.Background(), f.secretary.ID, "maria",
		model.BoardFilter{SecretariatID: &f.gobierno.ID})
	require.NoError(t, err)

	assert.Empty(t, board.Items)
	assert.Empty(t, board.Units)
}

func TestBoard_ChiefUnderForeignSecretariatFilter(t *testing.T) {
	f := newBoardFixture()
	reporter := f.employee("Rosa Reportera", "rosa", "11", f.prensa)
	mine := f.seed(f.prensa, reporter, model.StatusPendingChief, time.Now())
	archivist := f.employee("Luis Archivero", "luis", "12", f.archivo)
	f.seed(f.archivo, archivist, model.StatusPendingChief, time.Now())

	// Selecting Gobierno keeps only Pedro's own area under it, not its
	// sibling.
	board, err := f.service.GetBoard(context.Background(), f.chief.ID, "pedro",
		model.BoardFilter{SecretariatID: &f.gobierno.ID})
	require.NoError(t, err)

	require.Len(t, board.Items, 1)
	assert.Equal(t, mine.ID, board.Items[0].ID)
	require.Len(t, board.Units, 1)
	assert.Equal(t, f.prensa.ID, board.Units[0].ID)
}

func TestBoard_StateAndDateFilters(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)

	jan10 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	jan15Late := time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC)
	feb01 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	f.seed(f.tesoreria, worker, model.StatusApproved, jan10)
	boundary := f.seed(f.tesoreria, worker, model.StatusPendingChief, jan15Late)
	f.seed(f.tesoreria, worker, model.StatusPendingChief, feb01)

	from := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	board, err := f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin", model.BoardFilter{
		States: []string{model.StatusPendingChief},
		From:   &from,
		To:     &to,
	})
	require.NoError(t, err)

	// The upper bound is inclusive through end of day, so the 23:30
	// submission on the 15th stays in.
	require.Len(t, board.Items, 1)
	assert.Equal(t, boundary.ID, board.Items[0].ID)
}

func TestBoard_SearchMatchesEveryToken(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan.perez", "10", f.tesoreria)
	reporter := f.employee("Rosa Reportera", "rosa", "11", f.prensa)
	now := time.Now()
	match := f.seed(f.tesoreria, worker, model.StatusPendingChief, now)
	f.seed(f.prensa, reporter, model.StatusPendingChief, now)

	// One token hits the login, the other the snapshotted name; both
	// must land on the same request.
	board, err := f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin",
		model.BoardFilter{Search: "perez empleado"})
	require.NoError(t, err)

	require.Len(t, board.Items, 1)
	assert.Equal(t, match.ID, board.Items[0].ID)

	board, err = f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin",
		model.BoardFilter{Search: "perez reportera"})
	require.NoError(t, err)
	assert.Empty(t, board.Items)
}

func TestBoard_TotalsAgreeWithBreakdown(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	clerk := f.employee("Carla Catastro", "carla", "12", f.catastro)
	now := time.Now()
	f.seed(f.tesoreria, worker, model.StatusPendingChief, now)
	f.seed(f.tesoreria, worker, model.StatusApproved, now)
	f.seed(f.tesoreria, worker, model.StatusApproved, now)
	f.seed(f.catastro, clerk, model.StatusRejected, now)

	board, err := f.service.GetBoard(context.Background(), f.secretary.ID, "maria", model.BoardFilter{})
	require.NoError(t, err)

	sumTotals := 0
	for _, n := range board.Totals {
		sumTotals += n
	}
	sumByUnit := 0
	for _, b := range board.ByUnit {
		sumByUnit += b.Total
	}
	assert.Equal(t, 4, sumTotals)
	assert.Equal(t, sumTotals, sumByUnit)

	// Busiest unit first.
	require.Len(t, board.ByUnit, 2)
	assert.Equal(t, f.tesoreria.ID, board.ByUnit[0].UnitID)
	assert.Equal(t, 3, board.ByUnit[0].Total)
	assert.Equal(t, 2, board.ByUnit[0].ByState[model.StatusApproved])
}

func TestBoard_SortWhitelist(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	older := f.seed(f.tesoreria, worker, model.StatusPendingChief, time.Now().Add(-time.Hour))
	newer := f.seed(f.tesoreria, worker, model.StatusPendingChief, time.Now())

	// Unknown key falls back to submission date, newest first.
	board, err := f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin",
		model.BoardFilter{SortBy: "motivo; drop table"})
	require.NoError(t, err)
	require.Len(t, board.Items, 2)
	assert.Equal(t, newer.ID, board.Items[0].ID)

	board, err = f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin",
		model.BoardFilter{SortBy: "id", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, older.ID, board.Items[0].ID)
}

func TestBoard_PaginationClamps(t *testing.T) {
	f := newBoardFixture()
	worker := f.employee("Juan Empleado", "juan", "10", f.tesoreria)
	for i := 0; i < 3; i++ {
		f.seed(f.tesoreria, worker, model.StatusPendingChief, time.Now().Add(time.Duration(i)*time.Minute))
	}

	board, err := f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin",
		model.BoardFilter{Page: -5, Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 1, board.Pagination.Page)
	assert.Equal(t, model.BoardMaxLimit, board.Pagination.Limit)
	assert.Equal(t, 3, board.Pagination.Total)

	board, err = f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin",
		model.BoardFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, board.Items, 1)
	assert.Equal(t, 2, board.Pagination.Pages)

	// Defaults apply when nothing is sent.
	board, err = f.service.GetBoard(context.Background(), f.admin.ID, "ana.admin", model.BoardFilter{})
	require.NoError(t, err)
	assert.Equal(t, model.BoardDefaultLimit, board.Pagination.Limit)
}
