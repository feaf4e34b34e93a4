package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/models"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/kanban"
)

// fakeGate approves or refuses supervisor checks and records how it was called.
type fakeGate struct {
	session *models.Session
	err     error
	calls   int
}

func (g *fakeGate) Authenticate(_ context.Context, _, _ string, _ models.Role) (*models.Session, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

func operatorSession() *models.Session {
	return &models.Session{UserID: "op01", Role: models.RoleOperator, SupplierCode: "SUP001"}
}

func TestPrint_DecodesFullResult(t *testing.T) {
	m := newFakeRepoManager()
	m.kanban.result = &models.RawResult{
		Result: "Y~Acme~Traceability Tag~0000007~COMP01~NEW~22/02/2026~LOT123~LOT456~SN2~15:00:00~5~360",
	}
	s := NewTagService(nil, m, &fakeGate{})

	outcome, err := s.Print(context.Background(), operatorSession(), &models.TagRequest{SupplierPartNo: "PART01"})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	require.NotNil(t, outcome.Print)
	assert.Equal(t, "0000007", outcome.Print.SerialNo)
	assert.Equal(t, 360, outcome.Print.TotalQtyStockIn)
	assert.Equal(t, kanban.OpPrint, m.kanban.lastOpType)
	assert.Equal(t, "op01", m.kanban.lastReq.PrintedBy)
}

func TestPrint_BusinessRejectionIsNotAnError(t *testing.T) {
	m := newFakeRepoManager()
	m.kanban.result = &models.RawResult{Result: "N~Serial limit exceeded"}
	s := NewTagService(nil, m, &fakeGate{})

	outcome, err := s.Print(context.Background(), operatorSession(), &models.TagRequest{})
	require.NoError(t, err)
	assert.False(t, outcome.OK)
	assert.Equal(t, "Serial limit exceeded", outcome.Message)
}

func TestPrint_NoResultFromStore(t *testing.T) {
	m := newFakeRepoManager()
	m.kanban.err = common.ErrorNotFound
	s := NewTagService(nil, m, &fakeGate{})

	_, err := s.Print(context.Background(), operatorSession(), &models.TagRequest{})
	assert.ErrorIs(t, err, common.ErrNoResult)
}

func TestReprint_AuthFailureNeverReachesStore(t *testing.T) {
	m := newFakeRepoManager()
	m.kanban.result = &models.RawResult{Result: "Y~ok"}
	gate := &fakeGate{err: common.ErrInsufficientRights}
	s := NewTagService(nil, m, gate)

	_, err := s.Reprint(context.Background(), "sup01", "badpass", &models.TagRequest{OldBarcode: "BC-001"})
	assert.ErrorIs(t, err, common.ErrInsufficientRights)
	assert.Equal(t, 1, gate.calls)
	assert.Zero(t, m.kanban.executeCalls)
}

func TestReprint_Success(t *testing.T) {
	m := newFakeRepoManager()
	m.kanban.result = &models.RawResult{
		Result: "Y~Acme~Traceability Tag~0000007~COMP01~NEW~22/02/2026~LOT123~SN2~15:00:00~5",
	}
	gate := &fakeGate{session: &models.Session{UserID: "sup01", Role: models.RoleSupervisor}}
	s := NewTagService(nil, m, gate)

	outcome, err := s.Reprint(context.Background(), "sup01", "secret", &models.TagRequest{OldBarcode: "BC-001"})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	assert.Equal(t, kanban.OpReprint, m.kanban.lastOpType)
	assert.Equal(t, "sup01", m.kanban.lastReq.PrintedBy)
}

func TestRework_UnknownBarcodeNeverReachesStore(t *testing.T) {
	m := newFakeRepoManager()
	m.rework.result = &models.RawResult{Result: "Y~ok"}
	s := NewTagService(nil, m, &fakeGate{})

	_, err := s.Rework(context.Background(), operatorSession(), &models.TagRequest{OldBarcode: "GHOST"})
	assert.ErrorIs(t, err, common.ErrTagNotFound)
	assert.Zero(t, m.rework.executeCalls)
}

func TestRework_Success(t *testing.T) {
	m := newFakeRepoManager()
	m.rework.validTag = &models.ReworkTag{Barcode: "BC-001", SupplierPartNo: "PART01"}
	m.rework.result = &models.RawResult{
		Result: "Y~BC-002~10:15:00~0000043~1~3~REWORK~22/02/2026",
	}
	s := NewTagService(nil, m, &fakeGate{})

	outcome, err := s.Rework(context.Background(), operatorSession(), &models.TagRequest{OldBarcode: "BC-001"})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	require.NotNil(t, outcome.Rework)
	assert.Equal(t, "BC-002", outcome.Rework.Barcode)
	assert.Equal(t, 1, m.rework.executeCalls)
}

func TestPrintParameter_SupervisorGated(t *testing.T) {
	m := newFakeRepoManager()
	m.kanban.parameter = &models.PrintParameter{SupplierPart: "PART01"}
	gate := &fakeGate{err: common.ErrInvalidCredentials}
	s := NewTagService(nil, m, gate)

	_, err := s.PrintParameter(context.Background(), "sup01", "bad", "PART01", "SUP001", "")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	gate.err = nil
	gate.session = &models.Session{UserID: "sup01"}
	p, err := s.PrintParameter(context.Background(), "sup01", "good", "PART01", "SUP001", "")
	require.NoError(t, err)
	assert.Equal(t, "PART01", p.SupplierPart)
}

func TestScanBarcode_Unknown(t *testing.T) {
	m := newFakeRepoManager()
	s := NewTagService(nil, m, &fakeGate{})

	_, err := s.ScanBarcode(context.Background(), "GHOST", "ST01")
	assert.ErrorIs(t, err, common.ErrTagNotFound)
}

func TestChangeLotNo_SupervisorGated(t *testing.T) {
	m := newFakeRepoManager()
	gate := &fakeGate{err: errors.New("refused")}
	s := NewTagService(nil, m, gate)

	err := s.ChangeLotNo(context.Background(), "sup01", "bad", &models.LotChange{Barcode: "BC-001"})
	assert.Error(t, err)

	gate.err = nil
	gate.session = &models.Session{UserID: "sup01"}
	err = s.ChangeLotNo(context.Background(), "sup01", "good", &models.LotChange{Barcode: "BC-001", OldLotNo: "A", NewLotNo: "B"})
	assert.NoError(t, err)
}

func TestReprintParameter(t *testing.T) {
	m := newFakeRepoManager()
	s := NewTagService(nil, m, &fakeGate{})

	_, err := s.ReprintParameter(context.Background(), "PART01", "SUP001")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	m.lotStructure.structure = &models.LotStructure{TotalNoOfDigits: 10, NoOfSteps: 3}
	st, err := s.ReprintParameter(context.Background(), "PART01", "SUP001")
	require.NoError(t, err)
	assert.Equal(t, 10, st.TotalNoOfDigits)
}

func TestLastPrintDetails_AbsentMeansZeroCounters(t *testing.T) {
	m := newFakeRepoManager()
	s := NewTagService(nil, m, &fakeGate{})

	lp, err := s.LastPrintDetails(context.Background(), "PART01", "SUP001")
	require.NoError(t, err)
	assert.Zero(t, lp.TotalNoOfTags)
	assert.Empty(t, lp.RunningSNNo)
}
