package timecard

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the tabular encoding of a timecard export.
type Format string

// Supported formats.
const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	csvExtensionConstant          = ".csv"
	xlsxExtensionConstant         = ".xlsx"
	unknownFormatTemplateConstant = "%w: %s"
)

// SupportedFormats lists the accepted format names in display order.
func SupportedFormats() []string {
	return []string{string(FormatAuto), string(FormatCSV), string(FormatXLSX)}
}

// ParseFormat normalizes a user-provided format name.
func ParseFormat(rawValue string) (Format, error) {
	normalizedValue := Format(strings.ToLower(strings.TrimSpace(rawValue)))
	switch normalizedValue {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatCSV, FormatXLSX:
		return normalizedValue, nil
	default:
		return "", fmt.Errorf(unknownFormatTemplateConstant, ErrUnsupportedFormat, rawValue)
	}
}

// ResolveFormat replaces FormatAuto with the format implied by the file extension.
func ResolveFormat(format Format, filePath string) (Format, error) {
	if format != FormatAuto && len(format) > 0 {
		return format, nil
	}

	extension := strings.ToLower(filepath.Ext(filePath))
	switch extension {
	case xlsxExtensionConstant:
		return FormatXLSX, nil
	case csvExtensionConstant, "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf(unknownFormatTemplateConstant, ErrUnsupportedFormat, extension)
	}
}
