package timecard

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	workbookOpenErrorTemplateConstant = "unable to open workbook: %w"
	sheetReadErrorTemplateConstant    = "unable to read sheet %q: %w"
	sheetMissingTemplateConstant      = "sheet %q not found"
	workbookEmptyMessageConstant      = "workbook has no sheets"
	durationRenderTemplateConstant    = "%d:%02d"
	minutesPerDayConstant             = 24 * 60
)

// cellKind describes how a numeric cell's number format presents its value.
type cellKind int

const (
	cellKindPlain cellKind = iota
	cellKindDate
	cellKindDateTime
	cellKindTimeOfDay
	cellKindElapsed
)

var builtInNumberFormatKinds = map[int]cellKind{
	14: cellKindDate,
	15: cellKindDate,
	16: cellKindDate,
	17: cellKindDate,
	18: cellKindTimeOfDay,
	19: cellKindTimeOfDay,
	20: cellKindTimeOfDay,
	21: cellKindTimeOfDay,
	22: cellKindDateTime,
	45: cellKindTimeOfDay,
	46: cellKindElapsed,
	47: cellKindTimeOfDay,
}

var isoCellDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// NewXLSXRecordSource loads a worksheet from an XLSX workbook. An empty sheet name selects the first sheet.
// Date, time and duration cells are rendered in the same layouts a CSV export uses.
func NewXLSXRecordSource(reader io.Reader, sheetName string) (*SliceRecordSource, error) {
	workbook, openError := excelize.OpenReader(reader)
	if openError != nil {
		return nil, fmt.Errorf(workbookOpenErrorTemplateConstant, openError)
	}
	defer func() { _ = workbook.Close() }()

	selectedSheet := strings.TrimSpace(sheetName)
	if len(selectedSheet) == 0 {
		selectedSheet = workbook.GetSheetName(0)
		if len(selectedSheet) == 0 {
			return nil, errors.New(workbookEmptyMessageConstant)
		}
	} else if sheetIndex, indexError := workbook.GetSheetIndex(selectedSheet); indexError != nil || sheetIndex < 0 {
		return nil, fmt.Errorf(sheetMissingTemplateConstant, selectedSheet)
	}

	rows, rowsError := workbook.GetRows(selectedSheet, excelize.Options{RawCellValue: true})
	if rowsError != nil {
		return nil, fmt.Errorf(sheetReadErrorTemplateConstant, selectedSheet, rowsError)
	}

	renderer := newWorkbookCellRenderer(workbook, selectedSheet)
	for rowPosition, row := range rows {
		for columnPosition, rawValue := range row {
			row[columnPosition] = renderer.render(columnPosition+1, rowPosition+1, rawValue)
		}
	}

	return NewSliceRecordSource(rows), nil
}

type workbookCellRenderer struct {
	workbook   *excelize.File
	sheetName  string
	date1904   bool
	styleKinds map[int]cellKind
}

func newWorkbookCellRenderer(workbook *excelize.File, sheetName string) *workbookCellRenderer {
	renderer := &workbookCellRenderer{workbook: workbook, sheetName: sheetName, styleKinds: make(map[int]cellKind)}
	if properties, propertiesError := workbook.GetWorkbookProps(); propertiesError == nil && properties.Date1904 != nil {
		renderer.date1904 = *properties.Date1904
	}
	return renderer
}

// render returns rawValue unchanged unless the cell holds a date, time or duration.
func (renderer *workbookCellRenderer) render(columnNumber int, rowNumber int, rawValue string) string {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return rawValue
	}

	cellName, cellNameError := excelize.CoordinatesToCellName(columnNumber, rowNumber)
	if cellNameError != nil {
		return rawValue
	}

	cellType, cellTypeError := renderer.workbook.GetCellType(renderer.sheetName, cellName)
	if cellTypeError != nil {
		return rawValue
	}

	switch cellType {
	case excelize.CellTypeDate:
		return renderer.renderISODate(cellName, trimmedValue, rawValue)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	default:
		return rawValue
	}

	serial, parseError := strconv.ParseFloat(trimmedValue, 64)
	if parseError != nil || serial < 0 {
		return rawValue
	}

	kind := renderer.numberFormatKind(cellName)
	if kind == cellKindTimeOfDay && serial >= 1 {
		kind = cellKindDateTime
	}

	switch kind {
	case cellKindTimeOfDay, cellKindElapsed:
		return renderDuration(serial)
	case cellKindDate, cellKindDateTime:
		cellTime, conversionError := excelize.ExcelDateToTime(serial, renderer.date1904)
		if conversionError != nil {
			return rawValue
		}
		return renderTime(cellTime.Round(time.Minute), kind)
	default:
		return rawValue
	}
}

func (renderer *workbookCellRenderer) renderISODate(cellName string, trimmedValue string, rawValue string) string {
	for _, layout := range isoCellDateLayouts {
		parsedTime, parseError := time.Parse(layout, trimmedValue)
		if parseError != nil {
			continue
		}
		kind := renderer.numberFormatKind(cellName)
		if kind != cellKindDate && kind != cellKindDateTime {
			kind = cellKindDateTime
			if parsedTime.Equal(parsedTime.Truncate(24 * time.Hour)) {
				kind = cellKindDate
			}
		}
		return renderTime(parsedTime.Round(time.Minute), kind)
	}
	return rawValue
}

func (renderer *workbookCellRenderer) numberFormatKind(cellName string) cellKind {
	styleIndex, styleIndexError := renderer.workbook.GetCellStyle(renderer.sheetName, cellName)
	if styleIndexError != nil {
		return cellKindPlain
	}
	if kind, cached := renderer.styleKinds[styleIndex]; cached {
		return kind
	}

	kind := cellKindPlain
	if style, styleError := renderer.workbook.GetStyle(styleIndex); styleError == nil && style != nil {
		if style.CustomNumFmt != nil {
			kind = classifyNumberFormatCode(*style.CustomNumFmt)
		} else {
			kind = builtInNumberFormatKinds[style.NumFmt]
		}
	}

	renderer.styleKinds[styleIndex] = kind
	return kind
}

// classifyNumberFormatCode inspects the first section of a custom format code, ignoring quoted text,
// escaped characters and bracketed modifiers other than elapsed-time tokens such as [h].
func classifyNumberFormatCode(formatCode string) cellKind {
	section := strings.ToLower(strings.SplitN(formatCode, ";", 2)[0])

	var significant strings.Builder
	elapsed := false
	for position := 0; position < len(section); position++ {
		switch section[position] {
		case '"':
			closing := strings.IndexByte(section[position+1:], '"')
			if closing < 0 {
				position = len(section)
				continue
			}
			position += closing + 1
		case '\\':
			position++
		case '[':
			closing := strings.IndexByte(section[position+1:], ']')
			if closing < 0 {
				position = len(section)
				continue
			}
			bracketed := section[position+1 : position+1+closing]
			if len(bracketed) > 0 && len(strings.Trim(bracketed, "hms")) == 0 {
				elapsed = true
				significant.WriteString(bracketed)
			}
			position += closing + 1
		default:
			significant.WriteByte(section[position])
		}
	}

	code := significant.String()
	hasDate := strings.ContainsAny(code, "yd")
	hasTime := strings.ContainsAny(code, "hs")
	switch {
	case hasDate && hasTime:
		return cellKindDateTime
	case hasDate:
		return cellKindDate
	case elapsed:
		return cellKindElapsed
	case hasTime:
		return cellKindTimeOfDay
	default:
		return cellKindPlain
	}
}

func renderTime(cellTime time.Time, kind cellKind) string {
	if kind == cellKindDate {
		return cellTime.Format(payCycleDateLayoutConstant)
	}
	return cellTime.Format(shiftTimestampLayoutConstant)
}

func renderDuration(serial float64) string {
	totalMinutes := int(math.Round(serial * minutesPerDayConstant))
	return fmt.Sprintf(durationRenderTemplateConstant, totalMinutes/60, totalMinutes%60)
}
