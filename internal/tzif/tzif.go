// Package tzif parses the binary zoneinfo format described in RFC 8536,
// the wire format under /usr/share/zoneinfo and similar system zone
// databases.
package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

var order = binary.BigEndian

// Version identifies the on-disk TZif format revision.
type Version byte

const (
	V1 Version = 0x00
	V2 Version = 0x32
	V3 Version = 0x33
)

var magic = [4]byte{'T', 'Z', 'i', 'f'}

// header is the fixed-size portion common to every TZif data block.
type header struct {
	Version  Version
	Reserved [15]byte
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

func readHeader(r io.Reader) (header, error) {
	var h header
	var m [4]byte
	if err := binary.Read(r, order, &m); err != nil {
		return h, fmt.Errorf("tzif: reading magic: %w", err)
	}
	if m != magic {
		return h, fmt.Errorf("tzif: bad magic %q", m)
	}
	if err := binary.Read(r, order, &h); err != nil {
		return h, fmt.Errorf("tzif: reading header: %w", err)
	}
	return h, nil
}

// LocalTimeType is one of a zone's distinct offset/designation pairs
// ("local time types" in RFC 8536 terms).
type LocalTimeType struct {
	UTOffsetSeconds int32
	IsDST           bool
	Designation     string
}

// Transition is an instant after which UTOffsetSeconds and Designation
// switch to those of Type.
type Transition struct {
	At   int64 // seconds since the unix epoch
	Type LocalTimeType
}

// Zone is the fully parsed contents of a TZif file: the transition
// history plus, for v2/v3 files, the POSIX TZ footer string that
// governs instants after the final recorded transition.
type Zone struct {
	Transitions []Transition
	Footer      string
}

// Parse reads a complete TZif file (v1, v2, or v3). If the file carries
// a v2+ payload, the 64-bit block is used and the v1 block discarded,
// per RFC 8536 §3.2.
func Parse(r io.Reader) (*Zone, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewReader(raw)

	h1, err := readHeader(buf)
	if err != nil {
		return nil, err
	}
	types, err := skipV1Block(buf, h1)
	if err != nil {
		return nil, err
	}

	if h1.Version == V1 {
		return &Zone{Transitions: types}, nil
	}

	h2, err := readHeader(buf)
	if err != nil {
		return nil, fmt.Errorf("tzif: reading v2 header: %w", err)
	}
	transitions, err := readDataBlock(buf, h2, 8)
	if err != nil {
		return nil, err
	}

	footer, err := readFooter(buf)
	if err != nil {
		return nil, err
	}

	return &Zone{Transitions: transitions, Footer: footer}, nil
}

// skipV1Block reads past the legacy 32-bit data block (needed only to
// reach the v2+ header that follows it) and returns its decoded
// transitions, used as a fallback for plain v1 files.
func skipV1Block(r *bytes.Reader, h header) ([]Transition, error) {
	return readDataBlock(r, h, 4)
}

func readDataBlock(r *bytes.Reader, h header, timeSize int) ([]Transition, error) {
	times := make([]int64, h.Timecnt)
	for i := range times {
		if timeSize == 4 {
			var v int32
			if err := binary.Read(r, order, &v); err != nil {
				return nil, fmt.Errorf("tzif: reading transition time: %w", err)
			}
			times[i] = int64(v)
		} else {
			var v int64
			if err := binary.Read(r, order, &v); err != nil {
				return nil, fmt.Errorf("tzif: reading transition time: %w", err)
			}
			times[i] = v
		}
	}

	typeIndices := make([]uint8, h.Timecnt)
	if err := binary.Read(r, order, &typeIndices); err != nil {
		return nil, fmt.Errorf("tzif: reading transition types: %w", err)
	}

	rawTypes := make([]struct {
		Offset int32
		IsDST  uint8
		Idx    uint8
	}, h.Typecnt)
	for i := range rawTypes {
		if err := binary.Read(r, order, &rawTypes[i].Offset); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &rawTypes[i].IsDST); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &rawTypes[i].Idx); err != nil {
			return nil, err
		}
	}

	designations := make([]byte, h.Charcnt)
	if err := binary.Read(r, order, &designations); err != nil {
		return nil, fmt.Errorf("tzif: reading designations: %w", err)
	}

	// Skip leap-second records, standard/wall indicators, and UT/local
	// indicators: rhythm does not model leap seconds (spec Non-goals).
	// Each leap record is a transition time (timeSize bytes) followed by
	// a 4-byte correction count (RFC 8536 §3.2).
	leapRecordSize := int64(timeSize + 4)
	if _, err := r.Seek(int64(h.Leapcnt)*leapRecordSize+int64(h.Isstdcnt)+int64(h.Isutcnt), io.SeekCurrent); err != nil {
		return nil, err
	}

	types := make([]LocalTimeType, h.Typecnt)
	for i, rt := range rawTypes {
		types[i] = LocalTimeType{
			UTOffsetSeconds: rt.Offset,
			IsDST:           rt.IsDST != 0,
			Designation:     designationAt(designations, int(rt.Idx)),
		}
	}

	transitions := make([]Transition, h.Timecnt)
	for i, t := range times {
		idx := 0
		if i < len(typeIndices) {
			idx = int(typeIndices[i])
		}
		if idx >= len(types) {
			return nil, fmt.Errorf("tzif: transition type index %d out of range", idx)
		}
		transitions[i] = Transition{At: t, Type: types[idx]}
	}
	return transitions, nil
}

func designationAt(pool []byte, offset int) string {
	if offset < 0 || offset >= len(pool) {
		return ""
	}
	end := bytes.IndexByte(pool[offset:], 0)
	if end < 0 {
		return string(pool[offset:])
	}
	return string(pool[offset : offset+end])
}

// readFooter reads the newline-delimited POSIX TZ string footer that
// follows a v2+ data block.
func readFooter(r *bytes.Reader) (string, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", fmt.Errorf("tzif: reading footer start: %w", err)
	}
	if b != '\n' {
		return "", fmt.Errorf("tzif: malformed footer, expected newline, got %q", b)
	}
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("tzif: reading footer: %w", err)
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
