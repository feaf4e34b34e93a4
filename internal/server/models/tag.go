package models

// LotLockType is the per-part policy governing whether the entry form for a
// supplier part may be locked read-only.
type LotLockType string

const (
	LotLockEnable   LotLockType = "Enable"
	LotLockDisable  LotLockType = "Disable"
	LotLockStandard LotLockType = "STANDARD"
)

// TagRequest carries the parameters of a print, re-print or rework call.
// OldBarcode is required for re-print and rework.
type TagRequest struct {
	CompanyCode    string
	PlantCode      string
	StationNo      string
	SupplierCode   string
	CustomerCode   string
	SupplierPartNo string
	PartNo         string
	LotNo1         string
	LotNo2         string
	TagType        string
	Weight         float64
	Qty            int
	IsMixedLot     bool
	RunningSNNo    string
	RMMaterial     string
	PrintedBy      string
	OldBarcode     string
	GrossWeight    string
}

// RawResult is the untyped pair the kanban store returns for every tag
// operation: a tilde-delimited positional Result string and an advisory Msg.
type RawResult struct {
	Result string
	Msg    string
}

// SupplierPartItem is one entry of the model-change dropdown.
type SupplierPartItem struct {
	SupplierPart string
	SupplierName string
}

// PrintParameter is the auto-fill row returned after a supervisor confirms a
// model selection.
type PrintParameter struct {
	SupplierPart        string
	SupplierPartName    string
	PartNo              string
	PartName            string
	LotSize             int
	SupplierPartLotSize string
	SupplierPartWeight  float64
	BinQty              int
	Shift               string
	PrintCycleTime      int
	TotalNoOfDigits     int
	NoOfSteps           int
	StepDigits          [6]int
	SupplierCode        string
	ToleranceWeight     float64
	WeighingScale       string
	ImageName           string
	BinWeight           float64
	BinToleranceWeight  float64
	DelimiterType       string
	CharacterLengthFrom int
	CharacterLengthTo   int
	LotLockType         LotLockType
}

// Shift is the current shift window for a supplier.
type Shift struct {
	Shift     string
	ShiftFrom string
	ShiftTo   string
}

// ScannedTag is the auto-fill row for a scanned barcode.
type ScannedTag struct {
	PartNo          string
	PartName        string
	SupplierPartNo  string
	SupplierName    string
	SupplierCode    string
	BatchSize       int
	Weight          float64
	IsMixedLot      bool
	LotNo1          string
	LotNo2          string
	Qty             int
	LastTagSerialNo string
	NoOfTagsPrinted int
	TotalQtyStockIn int
	Barcode         string
	OldBarcode      string
	TagType         string
	Shift           string
	PrintDate       string
	PrintTime       string
	StationNo       string
	PlantCode       string
	ToleranceWeight float64
	GrossWeight     string
	RMMaterial      string
}

// LotChange records a lot-number change on a printed tag.
type LotChange struct {
	Barcode  string
	OldLotNo string
	NewLotNo string
}

// ReworkTag is the validated prior tag a rework operation starts from.
type ReworkTag struct {
	SupplierCode     string
	SupplierName     string
	SupplierPartNo   string
	SupplierPartName string
	PartNo           string
	PartDescription  string
	LotNo1           string
	LotNo2           string
	TagType          string
	Weight           float64
	RunningSNNo      string
	Barcode          string
	PackSize         int
	Qty              int
	Shift            string
	CompanyName      string
	PrintDate        string
	ToleranceWeight  float64
	WeighingScale    string
	ImageName        string
	BinWeight        float64
}

// ReworkPrintDetail is one of the recent rework prints for a part and lot.
type ReworkPrintDetail struct {
	PlantCode      string
	StationNo      string
	Shift          string
	LotNo1         string
	LotNo2         string
	RunningSNNo    string
	PrintedBy      string
	PrintedOn      string
	PrintDate      string
	TagType        string
	SupplierName   string
	Barcode        string
	CompanyName    string
	SupplierPartNo string
	PartNo         string
	Weight         float64
	PackSize       int
	WeighingScale  string
	GrossWeight    float64
}

// LastPrint is the running serial and tag counters of the newest print for a
// supplier part.
type LastPrint struct {
	RunningSNNo   string
	CountNoOfTags int
	TotalNoOfTags int
}

// LotStructure holds the barcode digit layout used when re-entering a lot
// during rework.
type LotStructure struct {
	TotalNoOfDigits    int
	NoOfSteps          int
	StepDigits         [6]int
	SupplierCode       string
	ToleranceWeight    float64
	WeighingScale      string
	BinWeight          float64
	BinToleranceWeight float64
}
