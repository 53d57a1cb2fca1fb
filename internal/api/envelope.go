package api

import (
	"encoding/json"
	"fmt"

	"github.com/frahmantamala/budget-allocation/internal"
)

// Envelope is the canonical response wrapper every backend reply is coalesced
// into. The backend is inconsistent about casing, sending either
// {Success, Message, Data, Errors} or {success, message, data, errors}; both
// are accepted and a missing success flag is treated as failure.
type Envelope struct {
	Success bool
	Message string
	Data    json.RawMessage
	Errors  json.RawMessage
}

func (e *Envelope) UnmarshalJSON(b []byte) error {
	var raw struct {
		Success  *bool           `json:"success"`
		SuccessP *bool           `json:"Success"`
		Message  *string         `json:"message"`
		MessageP *string         `json:"Message"`
		Data     json.RawMessage `json:"data"`
		DataP    json.RawMessage `json:"Data"`
		Errors   json.RawMessage `json:"errors"`
		ErrorsP  json.RawMessage `json:"Errors"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.Success != nil:
		e.Success = *raw.Success
	case raw.SuccessP != nil:
		e.Success = *raw.SuccessP
	default:
		e.Success = false
	}

	switch {
	case raw.Message != nil:
		e.Message = *raw.Message
	case raw.MessageP != nil:
		e.Message = *raw.MessageP
	default:
		e.Message = ""
	}

	e.Data = coalesceRaw(raw.Data, raw.DataP)
	e.Errors = coalesceRaw(raw.Errors, raw.ErrorsP)
	return nil
}

// MarshalJSON emits the canonical lowercase envelope. Data and Errors pass
// through as received; entity-level casing is normalized by the DTO decoders.
func (e Envelope) MarshalJSON() ([]byte, error) {
	data := e.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	errs := e.Errors
	if len(errs) == 0 {
		errs = json.RawMessage("null")
	}
	return json.Marshal(struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Errors  json.RawMessage `json:"errors"`
	}{e.Success, e.Message, data, errs})
}

func coalesceRaw(lower, upper json.RawMessage) json.RawMessage {
	if len(lower) > 0 && string(lower) != "null" {
		return lower
	}
	if len(upper) > 0 && string(upper) != "null" {
		return upper
	}
	return nil
}

// HasData reports whether the payload carries anything besides null.
func (e *Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

// DecodeData unmarshals the payload into v. Wire DTOs rely on encoding/json's
// case-insensitive field match, so one PascalCase-tagged struct accepts both
// backend casings.
func (e *Envelope) DecodeData(v any) error {
	if !e.HasData() {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return internal.NewServerError("malformed response payload", 0).WithCause(err)
	}
	return nil
}

// Err converts an unsuccessful envelope into the typed failure callers
// propagate, carrying the backend's message when available.
func (e *Envelope) Err() error {
	if e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = "operation failed"
	}
	appErr := internal.NewServerError(msg, 0)
	if len(e.Errors) > 0 && string(e.Errors) != "null" {
		appErr = appErr.WithDetails(json.RawMessage(e.Errors))
	}
	return appErr
}

// ParseEnvelope normalizes a raw response body.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unrecognized response envelope: %w", err)
	}
	return &env, nil
}
