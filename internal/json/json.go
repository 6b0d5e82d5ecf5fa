// Package for JSON utility functions

package json

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var DecodeJSONError = errors.New("DecodeJSONError")

// Decode a single JSON object
func DecodeJson(dst interface{}, decoder *json.Decoder) error {
	if err := decoder.Decode(dst); err != nil {
		return errors.Join(DecodeJSONError, err)
	}

	// Ensure no extra tokens after decoding
	if _, err := decoder.Token(); err != io.EOF {
		return errors.Join(DecodeJSONError, fmt.Errorf("Extraneous tokens found in body"))
	}
	return nil
}

// Decode a response body holding at most one JSON value. Reports false,
// leaving dst untouched, when the body is empty.
func DecodeBody(dst interface{}, body io.Reader) (bool, error) {
	reader := bufio.NewReader(body)
	if _, err := reader.Peek(1); err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, errors.Join(DecodeJSONError, err)
	}

	if err := DecodeJson(dst, json.NewDecoder(reader)); err != nil {
		return false, err
	}
	return true, nil
}
