package breakpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCorruptSaveFile is returned when a persisted breakpoint set cannot be parsed.
var ErrCorruptSaveFile = errors.New("corrupt save file")

// duration is the persisted form of a timepoint.
type duration struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
}

type record struct {
	Hint      string   `json:"hint"`
	Timepoint duration `json:"timepoint"`
}

type document struct {
	Breakpoints *[]record `json:"breakpoints"`
}

func toDuration(d time.Duration) duration {
	d = max(d, 0)
	return duration{
		Secs:  uint64(d / time.Second),  //nolint:gosec // non-negative
		Nanos: uint32(d % time.Second), //nolint:gosec // always < 1e9
	}
}

func (d duration) toTime() (time.Duration, error) {
	if d.Nanos >= uint32(time.Second) {
		return 0, fmt.Errorf("%w: nanos out of range: %d", ErrCorruptSaveFile, d.Nanos)
	}
	const maxSecs = uint64(1<<63-1) / uint64(time.Second)
	if d.Secs > maxSecs {
		return 0, fmt.Errorf("%w: timepoint out of range: %ds", ErrCorruptSaveFile, d.Secs)
	}
	return time.Duration(d.Secs)*time.Second + time.Duration(d.Nanos), nil //nolint:gosec // bounds checked
}

// Marshal encodes the collection as {"breakpoints": [...]}.
func Marshal(c *Collection) ([]byte, error) {
	records := make([]record, 0, c.Len())
	for _, bp := range c.items {
		records = append(records, record{Hint: bp.Hint, Timepoint: toDuration(bp.Timepoint)})
	}
	return json.MarshalIndent(document{Breakpoints: &records}, "", "  ")
}

// Unmarshal decodes a collection previously written by Marshal.
// Any structural problem yields an error wrapping ErrCorruptSaveFile.
func Unmarshal(data []byte) (*Collection, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSaveFile, err)
	}
	if doc.Breakpoints == nil {
		return nil, fmt.Errorf("%w: missing \"breakpoints\" key", ErrCorruptSaveFile)
	}

	bps := make([]Breakpoint, 0, len(*doc.Breakpoints))
	for _, r := range *doc.Breakpoints {
		tp, err := r.Timepoint.toTime()
		if err != nil {
			return nil, err
		}
		bps = append(bps, Breakpoint{Timepoint: tp, Hint: r.Hint})
	}
	return NewCollection(bps...), nil
}
