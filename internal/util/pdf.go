package util

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// OptimizePdf writes an optimized copy of the uploaded pdf to outFile.
// Optimization also validates the file, so a corrupt or non-pdf upload fails
// here.
func OptimizePdf(fileHeader multipart.FileHeader, outFile string) error {
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	tempFile, err := CreateTemp("upload-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	return api.OptimizeFile(tempFile.Name(), outFile, nil)
}

// GetPageCount returns the number of pages of a pdf.
func GetPageCount(rs io.ReadSeeker) (int, error) {
	return api.PageCount(rs, nil)
}
