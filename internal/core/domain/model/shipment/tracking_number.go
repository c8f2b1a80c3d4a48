package shipment

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"shiptrack/internal/pkg/errs"
)

const (
	// TrackingNumberPrefix starts every generated tracking number.
	TrackingNumberPrefix = "TRK-"

	trackingSuffixLength   = 8
	trackingSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// largest multiple of len(alphabet) that fits in a byte; higher values are
	// rejected to keep the draw uniform
	trackingRejectionLimit = 252
)

var ErrTrackingNumberIsNotConstructed = errors.New("TrackingNumber must be created via NewTrackingNumber or GenerateTrackingNumber")

// TrackingNumber is the public identifier of a shipment. Lookups are exact
// and case-sensitive.
type TrackingNumber struct {
	value string
}

// NewTrackingNumber wraps an existing tracking number, e.g. one typed by a
// customer. Surrounding whitespace is dropped; the format is not enforced so
// legacy numbers keep resolving.
func NewTrackingNumber(raw string) (TrackingNumber, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("tracking_number")
	}
	return TrackingNumber{value: value}, nil
}

// GenerateTrackingNumber draws "TRK-" followed by 8 characters from [A-Z0-9]
// using random. Uniqueness is the caller's concern.
func GenerateTrackingNumber(random io.Reader) (TrackingNumber, error) {
	suffix := make([]byte, 0, trackingSuffixLength)
	buf := make([]byte, trackingSuffixLength*2)

	for len(suffix) < trackingSuffixLength {
		if _, err := io.ReadFull(random, buf); err != nil {
			return TrackingNumber{}, fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= trackingRejectionLimit {
				continue
			}
			suffix = append(suffix, trackingSuffixAlphabet[int(b)%len(trackingSuffixAlphabet)])
			if len(suffix) == trackingSuffixLength {
				break
			}
		}
	}

	return TrackingNumber{value: TrackingNumberPrefix + string(suffix)}, nil
}

func (n TrackingNumber) String() string {
	return n.value
}

func (n TrackingNumber) IsEqual(other TrackingNumber) bool {
	return n.value == other.value
}

func (n TrackingNumber) Validate() error {
	if n.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}
