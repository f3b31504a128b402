package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyType    = errors.New("envelope type is empty")
	ErrEmptyMessage = errors.New("empty message")
	ErrEmptyPayload = errors.New("empty payload")
)

// Encode marshals payload inside an envelope of type t
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, ErrEmptyType
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %q: %w", t, ErrEmptyPayload)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope unmarshals the outer envelope, leaving the payload raw
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyMessage
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	if e.T == "" {
		return Envelope{}, ErrEmptyType
	}
	return e, nil
}

// DecodePayload unmarshals the envelope payload into T
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 || string(env.P) == "null" {
		return out, fmt.Errorf("payload for %q: %w", env.T, ErrEmptyPayload)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}
