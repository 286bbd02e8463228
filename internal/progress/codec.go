package progress

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrRecordLength is returned when a record has the wrong size.
	ErrRecordLength = errors.New("progress: record has wrong length")

	// ErrRecordCorrupt is returned when a record has the right size but
	// out-of-range content.
	ErrRecordCorrupt = errors.New("progress: record is corrupt")
)

// Encode serialises a session: big-endian int32 level, int32 lives, then one
// byte per level flag.
func Encode(g GameSession) []byte {
	buf := make([]byte, RecordSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(int32(g.Level)))
	binary.BigEndian.PutUint32(buf[4:8], uint32(int32(g.Lives)))
	for i, f := range g.Flags {
		buf[8+i] = byte(f)
	}
	return buf
}

// Decode parses a record produced by Encode. On error the returned session
// is the default one, so callers can always use it.
func Decode(b []byte) (GameSession, error) {
	if len(b) != RecordSize {
		return NewGameSession(), fmt.Errorf("%w: got %d bytes, want %d", ErrRecordLength, len(b), RecordSize)
	}

	var g GameSession
	g.Level = int(int32(binary.BigEndian.Uint32(b[0:4])))
	g.Lives = int(int32(binary.BigEndian.Uint32(b[4:8])))
	for i := range g.Flags {
		g.Flags[i] = Status(b[8+i])
	}

	if !g.Valid() {
		return NewGameSession(), fmt.Errorf("%w: level %d, lives %d", ErrRecordCorrupt, g.Level, g.Lives)
	}
	return g, nil
}
