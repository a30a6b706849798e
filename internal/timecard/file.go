package timecard

import (
	"fmt"
	"os"
)

const (
	fileOpenErrorTemplateConstant = "unable to open timecard file %s: %w"
)

// OpenOptions controls how a timecard file is decoded.
type OpenOptions struct {
	Format    Format
	SheetName string
}

// FileRowReader is a RowReader bound to an open file.
type FileRowReader struct {
	*RowReader
	Format Format
	file   *os.File
}

// OpenFile opens the file, resolves its format, and reads the header row.
func OpenFile(filePath string, options OpenOptions) (*FileRowReader, error) {
	resolvedFormat, formatError := ResolveFormat(options.Format, filePath)
	if formatError != nil {
		return nil, formatError
	}

	file, openError := os.Open(filePath)
	if openError != nil {
		return nil, fmt.Errorf(fileOpenErrorTemplateConstant, filePath, openError)
	}

	var source RecordSource
	switch resolvedFormat {
	case FormatXLSX:
		workbookSource, workbookError := NewXLSXRecordSource(file, options.SheetName)
		if workbookError != nil {
			_ = file.Close()
			return nil, workbookError
		}
		source = workbookSource
	default:
		source = NewCSVRecordSource(file)
	}

	rowReader, readerError := NewRowReader(source)
	if readerError != nil {
		_ = file.Close()
		return nil, readerError
	}

	return &FileRowReader{RowReader: rowReader, Format: resolvedFormat, file: file}, nil
}

// Close releases the underlying file.
func (reader *FileRowReader) Close() error {
	if reader == nil || reader.file == nil {
		return nil
	}
	return reader.file.Close()
}
