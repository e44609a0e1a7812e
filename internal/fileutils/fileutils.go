// Package fileutils provides common file operations used throughout the
// application, including the encoding-tolerant line source for the raw sales
// feed.
package fileutils

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"fjacquet/sales-analytics/internal/logging"
)

// fallbackEncodings are tried in order when the file is not valid UTF-8.
// Exports from older spreadsheet tooling regularly arrive in one of these.
var fallbackEncodings = []struct {
	name    string
	decoder *encoding.Decoder
}{
	{"latin-1", charmap.ISO8859_1.NewDecoder()},
	{"cp1252", charmap.Windows1252.NewDecoder()},
}

// ReadSalesLines reads the raw sales file and returns its data lines: the
// header row is skipped and blank lines are dropped. The file is decoded as
// UTF-8 when possible, falling back to Latin-1 and then Windows-1252. A
// missing or undecodable file yields an empty slice rather than an error;
// the caller treats "no lines" as the failure signal.
func ReadSalesLines(filePath string, logger logging.Logger) []string {
	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to read sales file",
			logging.Field{Key: logging.FieldFile, Value: filePath})
		return nil
	}

	text, encodingName, ok := decodeText(data)
	if !ok {
		logger.Error("Could not decode sales file with any supported encoding",
			logging.Field{Key: logging.FieldFile, Value: filePath})
		return nil
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	// First non-blank line is the header row
	if len(lines) > 0 {
		lines = lines[1:]
	}

	logger.Info("Read sales data lines",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldEncoding, Value: encodingName},
		logging.Field{Key: logging.FieldCount, Value: len(lines)})
	return lines
}

// decodeText decodes raw bytes as UTF-8 when valid, otherwise via the
// fallback encodings in priority order.
func decodeText(data []byte) (string, string, bool) {
	if utf8.Valid(data) {
		return string(data), "utf-8", true
	}
	for _, enc := range fallbackEncodings {
		decoded, _, err := transform.Bytes(enc.decoder, data)
		if err != nil {
			continue
		}
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		return string(decoded), enc.name, true
	}
	return "", "", false
}

// FileExists checks if a file exists and is not a directory.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist.
func EnsureDirectoryExists(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteFile writes data to a file, creating parent directories as needed.
func WriteFile(filePath string, data []byte, perm os.FileMode) error {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CreateFile creates or truncates a file for writing, creating parent
// directories as needed.
func CreateFile(filePath string) (*os.File, error) {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	file, err := os.Create(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}
