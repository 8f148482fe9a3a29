package fetch

import (
	"context"
	"encoding/json"
	"net/http"
)

// JSON fetches a URL and decodes the response body into v.
func JSON(ctx context.Context, client *http.Client, urlStr string, opts *Options, v any) error {
	body, err := Bytes(ctx, client, urlStr, opts)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &Error{URL: urlStr, Message: "malformed JSON payload", Cause: err}
	}
	return nil
}
