// Package ocr defines the text-extraction seam of the scanning pipeline.
//
// The shipped implementation is a stand-in that fabricates plausible output
// from nothing but the image's dimensions. A real recognition engine replaces
// it by satisfying Extractor; no other package changes.
package ocr

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/docuscan/docuscan/internal/imageproc"
)

// Extractor turns a normalized image into extracted text.
type Extractor interface {
	Extract(path string) string
}

const (
	highResThreshold = 1500
	lowResThreshold  = 800

	highResMarker = "\n\n[High resolution image - enhanced text extraction]"
	lowResMarker  = "\n\n[Low resolution image - basic text extraction]"

	// extractFailure is returned whenever the image cannot be read. The
	// contract is to never fail the caller, only to degrade.
	extractFailure = "Error: Unable to extract text from this image. Please ensure the image is clear and contains readable text."
)

var cannedTexts = []string{
	"INVOICE\n\nDate: 2024-01-15\nInvoice #: INV-2024-001\n\nBill To:\nJohn Smith\n123 Main Street\nAnytown, ST 12345\n\nDescription: Professional Services\nAmount: $1,250.00\n\nThank you for your business!",

	"RECEIPT\n\nStore: Quick Mart\nDate: 2024-01-15 14:30\nTransaction #: 789456123\n\nItems:\n- Milk 2% 1gal    $3.99\n- Bread Whole Wheat    $2.49\n- Bananas 2lbs    $1.98\n\nSubtotal: $8.46\nTax: $0.67\nTotal: $9.13\n\nPayment: Credit Card\nThank you!",

	"DOCUMENT SCANNER\n\nThis appears to be a scanned document.\nThe text recognition system has detected\nmultiple lines of text content.\n\nKey Information:\n• Date detected\n• Numbers and amounts visible\n• Multiple text regions identified\n• Document structure recognized\n\nProcessing complete.",

	"MEETING NOTES\n\nDate: January 15, 2024\nAttendees: Team Alpha\n\nAgenda Items:\n1. Project status update\n2. Budget review\n3. Timeline adjustments\n4. Next steps\n\nAction Items:\n- Review quarterly report\n- Schedule follow-up meeting\n- Update project documentation\n\nNext meeting: January 22, 2024",

	"BUSINESS CARD\n\nJohn Smith\nSenior Manager\n\nABC Corporation\n456 Business Ave\nSuite 100\nBusiness City, BC 12345\n\nPhone: (555) 123-4567\nEmail: john.smith@abc-corp.com\nWebsite: www.abc-corp.com",
}

// MockExtractor fabricates extraction results from image metadata only.
type MockExtractor struct {
	log zerolog.Logger
}

// NewMockExtractor creates the stand-in extractor.
func NewMockExtractor(log zerolog.Logger) *MockExtractor {
	return &MockExtractor{log: log}
}

// Extract picks one of the canned text blocks and annotates it with a
// resolution-quality marker. Only the image's dimensions are read; a read
// failure logs and yields a fixed error message instead of an error.
func (e *MockExtractor) Extract(path string) string {
	width, height, err := imageproc.Dimensions(path)
	if err != nil {
		e.log.Error().Err(err).Str("path", path).Msg("mock extraction failed to read image")
		return extractFailure
	}

	text := cannedTexts[rand.Intn(len(cannedTexts))]

	switch {
	case width > highResThreshold || height > highResThreshold:
		text += highResMarker
	case width < lowResThreshold && height < lowResThreshold:
		text += lowResMarker
	}

	return text
}
