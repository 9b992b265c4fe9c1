package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/aycode/internal/common"
)

const maxBodyBytes = 1 << 20

// fields holds flat request body values. Bodies may be JSON objects or
// URL-encoded forms; anything else is rejected.
type fields map[string]string

// get returns the first non-empty value among keys.
func (f fields) get(keys ...string) string {
	for _, k := range keys {
		if v := f[k]; v != "" {
			return v
		}
	}
	return ""
}

func readFields(w http.ResponseWriter, r *http.Request) (fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "", "application/json":
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: malformed form body", common.ErrorValidation)
		}
		out := make(fields, len(r.PostForm))
		for k := range r.PostForm {
			out[k] = r.PostForm.Get(k)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported content type %q", common.ErrorValidation, mediaType)
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return fields{}, nil
		}
		return nil, fmt.Errorf("%w: malformed JSON body", common.ErrorValidation)
	}

	out := make(fields, len(raw))
	for k, v := range raw {
		switch value := v.(type) {
		case string:
			out[k] = value
		case float64:
			out[k] = strconv.FormatFloat(value, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(value)
		}
	}
	return out, nil
}
