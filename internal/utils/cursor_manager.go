package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CursorManager signs and verifies cursor-based pagination tokens so clients
// cannot tamper with the paging position.
type CursorManager struct {
	secret string
}

// CursorData is what a cursor decodes to.
type CursorData struct {
	Timestamp time.Time
	ID        string
}

// NewCursorManager creates a cursor manager with the given signing secret.
func NewCursorManager(secret string) *CursorManager {
	return &CursorManager{secret: secret}
}

// EncodeCursor produces a signed cursor from a row's timestamp and ID.
func (cm *CursorManager) EncodeCursor(timestamp time.Time, id string) string {
	cursorData := fmt.Sprintf("%d:%s", timestamp.UnixNano(), id)

	h := hmac.New(sha256.New, []byte(cm.secret))
	h.Write([]byte(cursorData))
	hash := h.Sum(nil)

	combined := fmt.Sprintf("%s:%s", cursorData, base64.StdEncoding.EncodeToString(hash))
	return base64.StdEncoding.EncodeToString([]byte(combined))
}

// DecodeCursor verifies the signature and extracts the paging position.
func (cm *CursorManager) DecodeCursor(cursor string) (*CursorData, error) {
	if cursor == "" {
		return nil, errors.New("empty cursor")
	}

	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 3 {
		return nil, errors.New("invalid cursor format")
	}

	timestampStr, id, receivedHashB64 := parts[0], parts[1], parts[2]

	h := hmac.New(sha256.New, []byte(cm.secret))
	h.Write([]byte(fmt.Sprintf("%s:%s", timestampStr, id)))
	computedHashB64 := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(computedHashB64), []byte(receivedHashB64)) {
		return nil, errors.New("cursor tampering detected")
	}

	timestampInt, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp in cursor: %w", err)
	}

	return &CursorData{
		Timestamp: time.Unix(0, timestampInt),
		ID:        id,
	}, nil
}

// CursorPagination carries pagination parameters from the request.
type CursorPagination struct {
	Limit  int    `json:"limit" form:"limit"`
	Cursor string `json:"cursor" form:"cursor"`
}

// PaginationResult is embedded in paginated responses.
type PaginationResult struct {
	NextCursor string `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

// GetPaginationDefaults clamps the limit into [1, maxLimit].
func GetPaginationDefaults(pagination *CursorPagination, defaultLimit, maxLimit int) {
	if pagination.Limit <= 0 {
		pagination.Limit = defaultLimit
	} else if pagination.Limit > maxLimit {
		pagination.Limit = maxLimit
	}
}

// ExtractCursorPaginationFromContext reads limit and cursor query params.
func ExtractCursorPaginationFromContext(c echo.Context) CursorPagination {
	var pagination CursorPagination

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			pagination.Limit = limit
		}
	}
	pagination.Cursor = c.QueryParam("cursor")

	return pagination
}
