// Package tagresult decodes the positional result strings the kanban store
// returns for print, re-print and rework operations.
//
// The wire format is ASCII, fields separated by '~', first field exactly "Y"
// on success. Print results carry 13 fields, re-prints 11 (no second lot or
// serial), reworks an independent 8-field layout. Layout selection for the
// print family is by field count, not by operation: the store trims trailing
// fields and the decoder tolerates that by substituting defaults.
//
// A result not starting with "Y" is a business rejection, not an error: the
// advisory text after the marker (or the accompanying Msg) becomes the
// failure message.
package tagresult

import (
	"strconv"
	"strings"
)

// Operation selects the result family being decoded.
type Operation int

const (
	Print Operation = iota
	Reprint
	Rework
)

func (o Operation) String() string {
	switch o {
	case Print:
		return "print"
	case Reprint:
		return "reprint"
	case Rework:
		return "rework"
	}
	return "unknown"
}

const (
	successMarker = "Y"
	delimiter     = "~"

	defaultSuccessMsg = "QR Tag Printed Successfully!"
)

// PrintData is the decoded result of a print or re-print. BarcodeLot2 and
// SerialNo2 are empty for re-prints and non-mixed-lot prints.
type PrintData struct {
	SupplierName    string
	Traceability    string
	SerialNo        string
	CompanyName     string
	TagType         string
	PrintDate       string
	BarcodeLot1     string
	BarcodeLot2     string
	SerialNo2       string
	PrintTime       string
	NoOfTagsStockIn int
	TotalQtyStockIn int
}

// ReworkData is the decoded result of a rework print.
type ReworkData struct {
	Barcode         string
	PrintTime       string
	SerialNo        string
	NoOfTagsStockIn int
	TotalQtyStockIn int
	TagType         string
	PrintDate       string
}

// Outcome is the typed decode result. Exactly one of Print or Rework is
// non-nil when OK is true.
type Outcome struct {
	OK      bool
	Message string
	Print   *PrintData
	Rework  *ReworkData
}

// Decode parses a raw result string and its advisory message for the given
// operation. It never fails: a missing success marker yields OK=false with a
// human-readable message, and truncated field lists decode to defaults.
func Decode(raw, msg string, op Operation) Outcome {
	fields := strings.Split(raw, delimiter)
	if raw == "" || fields[0] != successMarker {
		return Outcome{OK: false, Message: failureMessage(raw, fields, msg, op)}
	}

	if msg == "" {
		msg = defaultSuccessMsg
	}

	if op == Rework {
		return Outcome{OK: true, Message: msg, Rework: decodeRework(fields)}
	}
	return Outcome{OK: true, Message: msg, Print: decodePrint(fields)}
}

// failureMessage extracts the advisory text of a rejected result: everything
// after the leading marker field, then the raw string, then the store Msg.
func failureMessage(raw string, fields []string, msg string, op Operation) string {
	if m := strings.Join(fields[1:], delimiter); m != "" {
		return m
	}
	if raw != "" {
		return raw
	}
	if msg != "" {
		return msg
	}
	if op == Rework {
		return "Rework print failed"
	}
	return "Print failed"
}

func decodePrint(fields []string) *PrintData {
	d := &PrintData{
		SupplierName: at(fields, 1),
		Traceability: at(fields, 2),
		SerialNo:     at(fields, 3),
		CompanyName:  at(fields, 4),
		TagType:      at(fields, 5),
		PrintDate:    at(fields, 6),
		BarcodeLot1:  at(fields, 7),
	}

	switch {
	case len(fields) >= 13:
		// Full print layout with secondary lot and serial.
		d.BarcodeLot2 = at(fields, 8)
		d.SerialNo2 = at(fields, 9)
		d.PrintTime = at(fields, 10)
		d.NoOfTagsStockIn = intAt(fields, 11)
		d.TotalQtyStockIn = intAt(fields, 12)
	case len(fields) >= 11:
		// Re-print layout: no lot2/serial2, counters shifted left.
		d.PrintTime = at(fields, 8)
		d.NoOfTagsStockIn = intAt(fields, 9)
		d.TotalQtyStockIn = intAt(fields, 10)
	}
	// Shorter results keep the best-effort fields above and defaults for
	// the rest.
	return d
}

func decodeRework(fields []string) *ReworkData {
	return &ReworkData{
		Barcode:         at(fields, 1),
		PrintTime:       at(fields, 2),
		SerialNo:        at(fields, 3),
		NoOfTagsStockIn: intAt(fields, 4),
		TotalQtyStockIn: intAt(fields, 5),
		TagType:         at(fields, 6),
		PrintDate:       at(fields, 7),
	}
}

func at(fields []string, idx int) string {
	if idx < len(fields) {
		return fields[idx]
	}
	return ""
}

func intAt(fields []string, idx int) int {
	if idx >= len(fields) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(fields[idx]))
	if err != nil {
		return 0
	}
	return n
}
