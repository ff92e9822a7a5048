package helpers

import (
	"encoding/json"
	"net/http"
)

// Validator is implemented by request DTOs and form values that support validation.
// Validate returns error messages in rule order; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// FirstError returns the first failing rule's message for v, or "".
func FirstError(v Validator) string {
	if errs := v.Validate(); len(errs) > 0 {
		return errs[0]
	}
	return ""
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). On decode or validation failure
// it writes a 400 JSON error carrying the first message and returns false.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if msg := FirstError(v); msg != "" {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, msg)
			return false
		}
	}
	return true
}
