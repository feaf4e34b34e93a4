package tagresult

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FullPrintLayout(t *testing.T) {
	raw := "Y~Acme~Traceability Tag~0000007~COMP01~NEW~22/02/2026~LOT123~LOT456~SN2~15:00:00~5~360"

	out := Decode(raw, "OK", Print)

	require.True(t, out.OK)
	require.NotNil(t, out.Print)
	assert.Nil(t, out.Rework)
	assert.Equal(t, "OK", out.Message)

	assert.Equal(t, "Acme", out.Print.SupplierName)
	assert.Equal(t, "Traceability Tag", out.Print.Traceability)
	assert.Equal(t, "0000007", out.Print.SerialNo)
	assert.Equal(t, "COMP01", out.Print.CompanyName)
	assert.Equal(t, "NEW", out.Print.TagType)
	assert.Equal(t, "22/02/2026", out.Print.PrintDate)
	assert.Equal(t, "LOT123", out.Print.BarcodeLot1)
	assert.Equal(t, "LOT456", out.Print.BarcodeLot2)
	assert.Equal(t, "SN2", out.Print.SerialNo2)
	assert.Equal(t, "15:00:00", out.Print.PrintTime)
	assert.Equal(t, 5, out.Print.NoOfTagsStockIn)
	assert.Equal(t, 360, out.Print.TotalQtyStockIn)
}

func TestDecode_ReprintLayout(t *testing.T) {
	// 11 fields: counters follow the first barcode directly.
	raw := "Y~Acme~Traceability Tag~0000008~COMP01~NEW~23/02/2026~LOT789~16:30:00~7~420"

	out := Decode(raw, "", Reprint)

	require.True(t, out.OK)
	require.NotNil(t, out.Print)
	assert.Equal(t, defaultSuccessMsg, out.Message)

	assert.Equal(t, "0000008", out.Print.SerialNo)
	assert.Equal(t, "LOT789", out.Print.BarcodeLot1)
	assert.Empty(t, out.Print.BarcodeLot2)
	assert.Empty(t, out.Print.SerialNo2)
	assert.Equal(t, "16:30:00", out.Print.PrintTime)
	assert.Equal(t, 7, out.Print.NoOfTagsStockIn)
	assert.Equal(t, 420, out.Print.TotalQtyStockIn)
}

func TestDecode_TruncatedResultIsBestEffort(t *testing.T) {
	out := Decode("Y~Acme~Traceability Tag~0000009", "OK", Print)

	require.True(t, out.OK)
	require.NotNil(t, out.Print)
	assert.Equal(t, "Acme", out.Print.SupplierName)
	assert.Equal(t, "0000009", out.Print.SerialNo)
	assert.Empty(t, out.Print.BarcodeLot1)
	assert.Zero(t, out.Print.TotalQtyStockIn)
}

func TestDecode_BusinessRejection(t *testing.T) {
	out := Decode("N~Serial limit exceeded", "", Print)

	require.False(t, out.OK)
	assert.Equal(t, "Serial limit exceeded", out.Message)
	assert.Nil(t, out.Print)
	assert.Nil(t, out.Rework)
}

func TestDecode_RejectionWithoutAdvisoryFallsBackToRaw(t *testing.T) {
	out := Decode("Duplicate tag", "", Print)

	require.False(t, out.OK)
	assert.Equal(t, "Duplicate tag", out.Message)
}

func TestDecode_EmptyResultUsesMsgThenDefault(t *testing.T) {
	out := Decode("", "store offline", Print)
	require.False(t, out.OK)
	assert.Equal(t, "store offline", out.Message)

	out = Decode("", "", Print)
	require.False(t, out.OK)
	assert.Equal(t, "Print failed", out.Message)

	out = Decode("", "", Rework)
	require.False(t, out.OK)
	assert.Equal(t, "Rework print failed", out.Message)
}

func TestDecode_MarkerMustBeExact(t *testing.T) {
	// "YES" in the first field is not a success marker.
	out := Decode("YES~LOT1~10:00:00", "", Print)
	require.False(t, out.OK)
	assert.Equal(t, "LOT1~10:00:00", out.Message)
}

func TestDecode_ReworkLayout(t *testing.T) {
	raw := "Y~BC202600412~09:15:30~0000412~3~150~RWK~24/02/2026"

	out := Decode(raw, "QR Tag Printed Successfully!", Rework)

	require.True(t, out.OK)
	require.NotNil(t, out.Rework)
	assert.Nil(t, out.Print)

	assert.Equal(t, "BC202600412", out.Rework.Barcode)
	assert.Equal(t, "09:15:30", out.Rework.PrintTime)
	assert.Equal(t, "0000412", out.Rework.SerialNo)
	assert.Equal(t, 3, out.Rework.NoOfTagsStockIn)
	assert.Equal(t, 150, out.Rework.TotalQtyStockIn)
	assert.Equal(t, "RWK", out.Rework.TagType)
	assert.Equal(t, "24/02/2026", out.Rework.PrintDate)
}

func TestDecode_ReworkRejection(t *testing.T) {
	out := Decode("N~Tag already dispatched", "", Rework)

	require.False(t, out.OK)
	assert.Equal(t, "Tag already dispatched", out.Message)
	assert.Nil(t, out.Rework)
}

func TestDecode_NonNumericCountersDefaultToZero(t *testing.T) {
	raw := "Y~Acme~Traceability Tag~0000010~COMP01~NEW~22/02/2026~LOT1~~~15:00:00~x~y"

	out := Decode(raw, "", Print)

	require.True(t, out.OK)
	assert.Zero(t, out.Print.NoOfTagsStockIn)
	assert.Zero(t, out.Print.TotalQtyStockIn)
}
