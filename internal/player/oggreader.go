package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	errInvalidOggMagic   = errors.New("ogg: invalid capture pattern")
	errInvalidOggVersion = errors.New("ogg: unsupported version")
)

// oggPageHeader represents the header of an Ogg page.
type oggPageHeader struct {
	GranulePos   int64
	SerialNumber uint32
	SequenceNum  uint32
	NumSegments  uint8
	SegmentTable []uint8
}

// bodySize is the length of the page body described by the segment table.
func (h *oggPageHeader) bodySize() int {
	n := 0
	for _, s := range h.SegmentTable {
		n += int(s)
	}
	return n
}

// parseOggPageHeader reads and parses an Ogg page header from the reader.
func parseOggPageHeader(r io.Reader) (*oggPageHeader, error) {
	var buf [27]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	if string(buf[0:4]) != "OggS" {
		return nil, errInvalidOggMagic
	}
	if buf[4] != 0 {
		return nil, errInvalidOggVersion
	}

	hdr := &oggPageHeader{
		GranulePos:   int64(binary.LittleEndian.Uint64(buf[6:14])),
		SerialNumber: binary.LittleEndian.Uint32(buf[14:18]),
		SequenceNum:  binary.LittleEndian.Uint32(buf[18:22]),
		// checksum at buf[22:26] is not verified
		NumSegments: buf[26],
	}
	if hdr.NumSegments > 0 {
		hdr.SegmentTable = make([]uint8, hdr.NumSegments)
		if _, err := io.ReadFull(r, hdr.SegmentTable); err != nil {
			return nil, err
		}
	}
	return hdr, nil
}

// oggPackets walks the packets of the first logical stream in an Ogg
// payload held in memory. Packets spanning pages are joined.
type oggPackets struct {
	r       *bytes.Reader
	serial  uint32
	started bool
	pending [][]byte
	partial []byte
}

func newOggPackets(data []byte) *oggPackets {
	return &oggPackets{r: bytes.NewReader(data)}
}

// next returns the next complete packet, or io.EOF after the last one.
// A packet left unterminated at the end of the data is dropped.
func (p *oggPackets) next() ([]byte, error) {
	for len(p.pending) == 0 {
		if err := p.readPage(); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, io.EOF
			}
			return nil, err
		}
	}
	pkt := p.pending[0]
	p.pending = p.pending[1:]
	return pkt, nil
}

func (p *oggPackets) readPage() error {
	hdr, err := parseOggPageHeader(p.r)
	if err != nil {
		return err
	}
	body := make([]byte, hdr.bodySize())
	if _, err := io.ReadFull(p.r, body); err != nil {
		return io.ErrUnexpectedEOF
	}

	if !p.started {
		p.serial = hdr.SerialNumber
		p.started = true
	} else if hdr.SerialNumber != p.serial {
		// Other multiplexed streams are ignored.
		return nil
	}

	off := 0
	for _, seg := range hdr.SegmentTable {
		p.partial = append(p.partial, body[off:off+int(seg)]...)
		off += int(seg)
		if seg < 255 {
			p.pending = append(p.pending, p.partial)
			p.partial = nil
		}
	}
	return nil
}
