package main

import (
	"errors"
	"os"

	xml2doc "github.com/alnah/go-xml2doc"
	"github.com/alnah/go-xml2doc/internal/config"
)

// Exit codes for xml2doc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, xml2doc.ErrBrowserConnect) ||
		errors.Is(err, xml2doc.ErrPageCreate) ||
		errors.Is(err, xml2doc.ErrPageLoad) ||
		errors.Is(err, xml2doc.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadXML) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, xml2doc.ErrEmptyXML) ||
		errors.Is(err, xml2doc.ErrXMLParse) ||
		errors.Is(err, xml2doc.ErrInvalidPageSize) ||
		errors.Is(err, xml2doc.ErrInvalidOrientation) ||
		errors.Is(err, xml2doc.ErrInvalidMargin) ||
		errors.Is(err, xml2doc.ErrInvalidFooterPosition) ||
		errors.Is(err, xml2doc.ErrInvalidTOCDepth) ||
		errors.Is(err, xml2doc.ErrInvalidBackLink) ||
		errors.Is(err, xml2doc.ErrUnknownFormat) ||
		errors.Is(err, xml2doc.ErrStyleNotFound) ||
		errors.Is(err, xml2doc.ErrTemplateSetNotFound) ||
		errors.Is(err, xml2doc.ErrIncompleteTemplateSet) ||
		errors.Is(err, xml2doc.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
