package catalog

import (
	"errors"
	"fmt"
)

// ErrNoSource is wrapped by UpstreamError when no source is registered for a type.
var ErrNoSource = errors.New("no catalog source registered")

// UpstreamError is returned when a source collection cannot be retrieved at all.
type UpstreamError struct {
	ServiceType ServiceType
	Err         error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog %s: upstream unavailable: %v", e.ServiceType, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// InvalidRecordError is returned when a raw record cannot be mapped.
type InvalidRecordError struct {
	ServiceType ServiceType
	ItemID      string
	Reason      string
	Err         error
}

func (e *InvalidRecordError) Error() string {
	msg := fmt.Sprintf("catalog %s record", e.ServiceType)
	if e.ItemID != "" {
		msg += " " + e.ItemID
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidRecordError) Unwrap() error { return e.Err }

// ItemNotFoundError is returned by GetItem for an unknown id.
type ItemNotFoundError struct {
	ServiceType ServiceType
	ItemID      string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("catalog %s item %s not found", e.ServiceType, e.ItemID)
}
