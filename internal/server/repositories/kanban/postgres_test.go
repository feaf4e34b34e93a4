package kanban

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestExecute_ReturnsRawPairUntouched(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"result", "msg"}).
		AddRow("N~Serial limit exceeded", "contact supervisor")
	mock.ExpectQuery("prc_print_kanban").WillReturnRows(rows)

	res, err := repo.Execute(context.Background(), OpPrint, &models.TagRequest{
		SupplierPartNo: "PART01", SupplierCode: "SUP001", Qty: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "N~Serial limit exceeded", res.Result)
	assert.Equal(t, "contact supervisor", res.Msg)
}

func TestExecute_NoRow(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("prc_print_kanban").
		WillReturnRows(sqlmock.NewRows([]string{"result", "msg"}))

	_, err := repo.Execute(context.Background(), OpReprint, &models.TagRequest{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSupplierParts(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"supplier_part_no", "supplier_name"}).
		AddRow("PART01", "Acme Components").
		AddRow("PART02", "Acme Components")
	mock.ExpectQuery("FROM supplier_part_master").
		WithArgs("SUP001", "PL01").
		WillReturnRows(rows)

	parts, err := repo.SupplierParts(context.Background(), "SUP001", "PL01")
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "PART01", parts[0].SupplierPart)
}

func TestPrintParameter_UnknownPart(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM supplier_part_master").
		WillReturnRows(sqlmock.NewRows([]string{"supplier_part_no"}))

	_, err := repo.PrintParameter(context.Background(), "NOPE", "SUP001", "")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestShift(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"shift", "from", "to"}).
		AddRow("A", "06:00", "14:00")
	mock.ExpectQuery("FROM shift_master").
		WithArgs("SUP001", "PL01").
		WillReturnRows(rows)

	s, err := repo.Shift(context.Background(), "SUP001", "PL01")
	require.NoError(t, err)
	assert.Equal(t, "A", s.Shift)
	assert.Equal(t, "06:00", s.ShiftFrom)
}

func TestScanBarcode_CopiesBarcodeToOldBarcode(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{
		"part_no", "part_name", "supplier_part_no", "supplier_name",
		"supplier_code", "batch_size", "weight", "is_mixed_lot",
		"lot_no1", "lot_no2", "qty", "running_sn_no",
		"count_no_of_tags", "total_qty", "barcode", "tag_type", "shift",
		"print_date", "print_time", "station_no", "plant_code",
		"tolerance_weight", "gross_weight", "rm_material",
	}).AddRow("P100", "Bracket", "PART01", "Acme", "SUP001", 50, 1.5, false,
		"LOT1", "", 100, "0000042", 2, 200, "BC-001", "NEW", "A",
		"22/02/2026", "10:15:00", "ST01", "PL01", 0.1, "1.6", "")
	mock.ExpectQuery("FROM tag_print").
		WithArgs("BC-001", "ST01").
		WillReturnRows(rows)

	tag, err := repo.ScanBarcode(context.Background(), "BC-001", "ST01")
	require.NoError(t, err)
	assert.Equal(t, "BC-001", tag.Barcode)
	assert.Equal(t, "BC-001", tag.OldBarcode)
	assert.Equal(t, "0000042", tag.LastTagSerialNo)
}

func TestChangeLotNo_OldLotMismatch(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE tag_print").
		WithArgs("LOT2", "sup01", "BC-001", "WRONG").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ChangeLotNo(context.Background(), &models.LotChange{
		Barcode: "BC-001", OldLotNo: "WRONG", NewLotNo: "LOT2",
	}, "sup01")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
