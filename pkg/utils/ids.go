package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

var (
	slugInvalidChars = regexp.MustCompile("[^a-z0-9-]")
	slugHyphenRuns   = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SequentialNo builds a document number of the form PREFIX-YYYYMMDD-NNNN,
// where seq is the count of documents already created that day
func SequentialNo(prefix string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), seq+1)
}

// GenerateInvoiceNo generates a daily-sequential sale invoice number
func GenerateInvoiceNo(date time.Time, seq int64) string {
	return SequentialNo("INV", date, seq)
}

// GenerateReturnNo generates a daily-sequential return number
func GenerateReturnNo(date time.Time, seq int64) string {
	return SequentialNo("RET", date, seq)
}

// GeneratePurchaseNo generates a daily-sequential purchase number
func GeneratePurchaseNo(date time.Time, seq int64) string {
	return SequentialNo("PUR", date, seq)
}

// GenerateTransferNo generates a daily-sequential stock transfer number
func GenerateTransferNo(date time.Time, seq int64) string {
	return SequentialNo("TRF", date, seq)
}

// GenerateReference generates a short random product reference
func GenerateReference() string {
	return "BK-" + strings.ToUpper(uuid.New().String()[:8])
}
