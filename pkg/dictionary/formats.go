package dictionary

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat shows file format types for dictionary source files.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText
)

// FormatInfo has the metadata for each file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary Source",
		Extensions:  []string{".txt", ".dict"},
		MinSize:     len("[WORDS]"),
	},
}

// ValidateFileFormat checks if a file matches our expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		log.Errorf("failed to stat file %s: %v", filename, err)
		return err
	}
	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		log.Errorf("unknown format: %v", expectedFormat)
		return errors.New("unknown format")
	}
	if fileInfo.Size() < formatInfo.MinSize {
		log.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
		return errors.New("file too small")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(formatInfo.Extensions, ext) {
		log.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
		return errors.New("invalid file extension")
	}
	return validateTextFormat(filename)
}

// validateTextFormat confirms the file at least opens one of our known
// section headers before the loader commits to parsing it line by
// line.
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		log.Errorf("failed to open file %s: %v", filename, err)
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			log.Debugf("text file %s validated: first section %s", filename, line)
			return nil
		}
		return errors.New("text dictionary must start with a [SECTION] header")
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("failed to read from text file %s: %v", filename, err)
		return err
	}
	return errors.New("empty dictionary file")
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".txt" || ext == ".dict" {
		if err := ValidateFileFormat(filename, FormatText); err == nil {
			return FormatText, nil
		}
	}
	log.Errorf("unable to detect format for file %s", filename)
	return FormatUnknown, errors.New("unable to detect format")
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// ListSupportedFormats returns all supported formats
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, 0, len(supportedFormats))
	for _, info := range supportedFormats {
		formats = append(formats, info)
	}
	return formats
}
