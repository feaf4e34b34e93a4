package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/models"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/kanban"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/lotstructure"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/refreshtokens"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/rework"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/rights"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/users"
)

// fakeRepoManager vends the in-memory fakes below regardless of the DBTX it
// is handed, so services can be exercised without a database.
type fakeRepoManager struct {
	users         *fakeUsers
	rights        *fakeRights
	lotStructure  *fakeLotStructure
	kanban        *fakeKanban
	rework        *fakeRework
	refreshTokens *fakeRefreshTokens
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:         &fakeUsers{},
		rights:        &fakeRights{allowed: map[string]bool{}},
		lotStructure:  &fakeLotStructure{},
		kanban:        &fakeKanban{},
		rework:        &fakeRework{},
		refreshTokens: &fakeRefreshTokens{tokens: map[string]models.RefreshToken{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.users }
func (m *fakeRepoManager) Rights(dbx.DBTX) rights.Repository           { return m.rights }
func (m *fakeRepoManager) LotStructure(dbx.DBTX) lotstructure.Repository {
	return m.lotStructure
}
func (m *fakeRepoManager) Kanban(dbx.DBTX) kanban.Repository { return m.kanban }
func (m *fakeRepoManager) Rework(dbx.DBTX) rework.Repository { return m.rework }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

type fakeUsers struct {
	admin     *models.AdminUser
	adminHash string
	mapped    bool

	endUser *models.EndUser
	hash    string

	created    []*models.NewUser
	updated    map[string]*models.UserUpdate
	deleted    []string
	pwChanged  bool
	pwOldHash  string
	groups     []models.UserGroup
	plants     []models.Plant
	stations   []models.PackingStation
	listResult []models.EndUser
}

func (f *fakeUsers) FindAdmin(_ context.Context, userID, passwordHash string) (*models.AdminUser, error) {
	if f.admin != nil && f.admin.UserID == userID && f.adminHash == passwordHash {
		return f.admin, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) HasSupplierMapping(context.Context, string) (bool, error) {
	return f.mapped, nil
}

func (f *fakeUsers) FindEndUser(_ context.Context, userID, passwordHash string) (*models.EndUser, error) {
	if f.endUser != nil && f.endUser.UserID == userID && f.hash == passwordHash {
		return f.endUser, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) FindEndUserByID(_ context.Context, userID string) (*models.EndUser, error) {
	if f.endUser != nil && f.endUser.UserID == userID {
		return f.endUser, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *models.NewUser) error {
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUsers) Update(_ context.Context, userID, _ string, u *models.UserUpdate) error {
	if f.updated == nil {
		f.updated = map[string]*models.UserUpdate{}
	}
	f.updated[userID] = u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeUsers) List(context.Context, string) ([]models.EndUser, error) {
	return f.listResult, nil
}

func (f *fakeUsers) ChangePassword(_ context.Context, _, oldHash, _ string) error {
	if oldHash != f.pwOldHash {
		return common.ErrorNotFound
	}
	f.pwChanged = true
	return nil
}

func (f *fakeUsers) Groups(context.Context) ([]models.UserGroup, error) { return f.groups, nil }
func (f *fakeUsers) Plants(context.Context, string) ([]models.Plant, error) {
	return f.plants, nil
}
func (f *fakeUsers) PackingStations(context.Context, string, string) ([]models.PackingStation, error) {
	return f.stations, nil
}

type fakeRights struct {
	// allowed maps "groupName/screenID" to view permission.
	allowed map[string]bool
}

func (f *fakeRights) grant(groupName string, screens ...models.ScreenID) {
	for _, s := range screens {
		f.allowed[groupName+"/"+string(s)] = true
	}
}

func (f *fakeRights) GroupHasView(_ context.Context, groupName string, screens []models.ScreenID) (bool, error) {
	for _, s := range screens {
		if !f.allowed[groupName+"/"+string(s)] {
			return false, nil
		}
	}
	return true, nil
}

type fakeLotStructure struct {
	policy    models.LotLockType
	policyErr error
	structure *models.LotStructure
}

func (f *fakeLotStructure) LockPolicy(context.Context, string) (models.LotLockType, error) {
	if f.policyErr != nil {
		return "", f.policyErr
	}
	return f.policy, nil
}

func (f *fakeLotStructure) Structure(context.Context, string, string) (*models.LotStructure, error) {
	if f.structure == nil {
		return nil, common.ErrorNotFound
	}
	return f.structure, nil
}

type fakeKanban struct {
	executeCalls int
	lastOpType   string
	lastReq      *models.TagRequest
	result       *models.RawResult
	err          error

	parts     []models.SupplierPartItem
	parameter *models.PrintParameter
	shift     *models.Shift
	scanned   *models.ScannedTag
	lotErr    error
}

func (f *fakeKanban) Execute(_ context.Context, opType string, req *models.TagRequest) (*models.RawResult, error) {
	f.executeCalls++
	f.lastOpType = opType
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeKanban) SupplierParts(context.Context, string, string) ([]models.SupplierPartItem, error) {
	return f.parts, nil
}

func (f *fakeKanban) PrintParameter(context.Context, string, string, string) (*models.PrintParameter, error) {
	if f.parameter == nil {
		return nil, common.ErrorNotFound
	}
	return f.parameter, nil
}

func (f *fakeKanban) Shift(context.Context, string, string) (*models.Shift, error) {
	return f.shift, nil
}

func (f *fakeKanban) ScanBarcode(context.Context, string, string) (*models.ScannedTag, error) {
	if f.scanned == nil {
		return nil, common.ErrorNotFound
	}
	return f.scanned, nil
}

func (f *fakeKanban) ChangeLotNo(context.Context, *models.LotChange, string) error {
	return f.lotErr
}

type fakeRework struct {
	validTag     *models.ReworkTag
	executeCalls int
	result       *models.RawResult
	details      []models.ReworkPrintDetail
	lastPrint    *models.LastPrint
}

func (f *fakeRework) ValidateTag(_ context.Context, barcode string) (*models.ReworkTag, error) {
	if f.validTag != nil && f.validTag.Barcode == barcode {
		return f.validTag, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRework) Execute(_ context.Context, _ *models.TagRequest) (*models.RawResult, error) {
	f.executeCalls++
	if f.result == nil {
		return nil, common.ErrorNotFound
	}
	return f.result, nil
}

func (f *fakeRework) PrintDetails(context.Context, string, string) ([]models.ReworkPrintDetail, error) {
	return f.details, nil
}

func (f *fakeRework) LastPrintDetails(context.Context, string, string) (*models.LastPrint, error) {
	if f.lastPrint == nil {
		return nil, common.ErrorNotFound
	}
	return f.lastPrint, nil
}

type fakeRefreshTokens struct {
	tokens map[string]models.RefreshToken
}

func (f *fakeRefreshTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	f.tokens[token] = models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rt, nil
}

func (f *fakeRefreshTokens) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshTokens) DeleteForUser(_ context.Context, userID string) error {
	for k, v := range f.tokens {
		if v.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}
