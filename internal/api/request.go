package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/cerebro/internal/errors"
)

const maxBodyBytes = 1 << 20

// localLayouts are accepted for instants without an offset; they are read in
// the server's configured zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.NewBadRequestError("request body is empty")
		}
		return errors.NewBadRequestError("malformed JSON body: " + err.Error())
	}
	return nil
}

// parseInstant accepts RFC 3339 or a local date-time. An empty string means
// the instant is absent.
func parseInstant(field, raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t, nil
		}
	}
	return nil, errors.NewValidationError(field, "expected RFC 3339 or YYYY-MM-DDTHH:MM:SS")
}
