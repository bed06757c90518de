package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor is the position of the last item of a page. The next page starts
// strictly after it in (Date DESC, ID DESC) order.
type Cursor struct {
	Date time.Time
	ID   string
}

// After reports whether an item at (date, id) comes after the cursor in
// (Date DESC, ID DESC) order.
func (c Cursor) After(date time.Time, id string) bool {
	if !date.Equal(c.Date) {
		return date.Before(c.Date)
	}
	return id < c.ID
}

// EncodeToken creates a base64 encoded token from an item date and ID.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.Date.Format(timeFormat), c.ID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a cursor.
// Malformed tokens are reported as validation errors.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (base64 decode): %s", apperrors.ErrValidation, err.Error())
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (date parse): %s", apperrors.ErrValidation, err.Error())
	}
	return Cursor{Date: date, ID: parts[1]}, nil
}
