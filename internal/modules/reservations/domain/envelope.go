package domain

import (
	"errors"
	"fmt"

	"reservationsClient/internal/shared/normalization"
)

var ErrUnexpectedPayload = errors.New("unexpected reservation payload")

// EnvelopeKind tags the response shape the backend answered with.
type EnvelopeKind int

const (
	EnvelopeBareArray EnvelopeKind = iota + 1
	EnvelopeEnvelopedArray
	EnvelopeBareObject
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeBareArray:
		return "bare-array"
	case EnvelopeEnvelopedArray:
		return "enveloped-array"
	case EnvelopeBareObject:
		return "bare-object"
	default:
		return "unknown"
	}
}

// Envelope is a decoded response: Items for array kinds, Object for single resources.
// Meta keeps the enclosing object of an enveloped array so pagination can be read from it.
type Envelope struct {
	Kind   EnvelopeKind
	Items  []any
	Object map[string]any
	Meta   map[string]any
}

var collectionKeys = []string{"data", "items", "reservations"}

// DecodeEnvelope resolves which of the known response shapes payload has.
func DecodeEnvelope(payload any) (Envelope, error) {
	switch typed := payload.(type) {
	case []any:
		return Envelope{Kind: EnvelopeBareArray, Items: typed}, nil
	case []map[string]any:
		return Envelope{Kind: EnvelopeBareArray, Items: normalization.AsInterfaceSlice(typed)}, nil
	case map[string]any:
		for _, key := range collectionKeys {
			value, ok := normalization.Lookup(typed, key)
			if !ok {
				continue
			}
			if items := normalization.AsInterfaceSlice(value); items != nil {
				return Envelope{Kind: EnvelopeEnvelopedArray, Items: items, Meta: typed}, nil
			}
		}
		object := normalization.MapFromPayload(typed)
		if len(object) == 0 {
			return Envelope{}, fmt.Errorf("%w: empty object", ErrUnexpectedPayload)
		}
		return Envelope{Kind: EnvelopeBareObject, Object: object}, nil
	default:
		return Envelope{}, fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
	}
}

// Reservations returns the normalized records of an array envelope. A bare object is treated
// as a single-item list.
func (e Envelope) Reservations() []Reservation {
	switch e.Kind {
	case EnvelopeBareArray, EnvelopeEnvelopedArray:
		return NormalizeReservations(e.Items)
	case EnvelopeBareObject:
		if reservation, ok := NormalizeReservation(e.Object); ok {
			return []Reservation{reservation}
		}
	}
	return []Reservation{}
}

// Reservation returns the single record of a bare-object envelope.
func (e Envelope) Reservation() (Reservation, error) {
	if e.Kind != EnvelopeBareObject {
		return Reservation{}, fmt.Errorf("%w: expected single resource, got %s", ErrUnexpectedPayload, e.Kind)
	}
	reservation, ok := NormalizeReservation(e.Object)
	if !ok {
		return Reservation{}, ErrMissingReservationID
	}
	return reservation, nil
}
