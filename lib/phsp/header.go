/*package phsp reads and writes EGS phase space files: binary records
describing particles crossing a scoring plane in a Monte Carlo
radiation-transport simulation. A file is a single header followed by
header.TotalParticles fixed-size records, all little-endian. The header
occupies one record-sized slot at the start of the file, so every slot in the
file has the same width.

Two format variants exist. MODE0 files store 28-byte records and MODE2 files
store 32-byte records whose extra field is the z position of the particle's
last interaction. Which variant a stream uses is decided once, when its
header is decoded, and threaded through every later record decode/encode.
*/
package phsp

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/stevanpecic/Phaser/lib/eq"
)

const (
	// HeaderLength is the number of meaningful bytes at the start of a file.
	// The rest of the header's record-sized slot is padding.
	HeaderLength = 25
	// MaxRecordLength is the size of a MODE2 record, the larger of the two
	// layouts.
	MaxRecordLength = 32
	// ModeLength is the size of the mode tag at the start of the header.
	ModeLength = 5
)

// The two recognized mode tags.
var (
	Mode0 = [ModeLength]byte{'M', 'O', 'D', 'E', '0'}
	Mode2 = [ModeLength]byte{'M', 'O', 'D', 'E', '2'}
)

// Header holds the aggregate statistics stored in the first slot of a phase
// space file, along with the record layout derived from the mode tag.
// RecordSize and UsingZLast are pure functions of Mode and are filled in by
// DecodeHeader.
type Header struct {
	Mode           [ModeLength]byte
	TotalParticles int32
	TotalPhotons   int32
	// MinEnergy and MaxEnergy are in MeV.
	MinEnergy float32
	MaxEnergy float32
	// TotalParticlesInSource counts particles emitted by the originating
	// source. It may be fractional.
	TotalParticlesInSource float32

	// RecordSize is 28 for MODE0 and 32 for MODE2. UsingZLast is true when
	// records carry the trailing last-z field, i.e. for MODE2.
	RecordSize int
	UsingZLast bool
}

// DecodeHeader parses the first HeaderLength bytes of a file. It fails with
// an error wrapping ErrBadMode if the mode tag is unrecognized.
func DecodeHeader(buf []byte) (*Header, error) {
	hd := &Header{ }
	copy(hd.Mode[:], buf[0:ModeLength])

	switch hd.Mode {
	case Mode0:
		hd.RecordSize, hd.UsingZLast = 28, false
	case Mode2:
		hd.RecordSize, hd.UsingZLast = 32, true
	default:
		return nil, fmt.Errorf("file starts with %q: %w", hd.Mode[:], ErrBadMode)
	}

	hd.TotalParticles = int32(binary.LittleEndian.Uint32(buf[5:9]))
	hd.TotalPhotons = int32(binary.LittleEndian.Uint32(buf[9:13]))
	hd.MaxEnergy = math.Float32frombits(binary.LittleEndian.Uint32(buf[13:17]))
	hd.MinEnergy = math.Float32frombits(binary.LittleEndian.Uint32(buf[17:21]))
	hd.TotalParticlesInSource =
		math.Float32frombits(binary.LittleEndian.Uint32(buf[21:25]))

	return hd, nil
}

// Encode returns the header's on-disk slot: the 25 logical bytes followed by
// zero padding out to RecordSize, so that the header and the records share
// one slot width.
func (hd *Header) Encode() []byte {
	buf := make([]byte, hd.RecordSize)
	copy(buf[0:ModeLength], hd.Mode[:])
	binary.LittleEndian.PutUint32(buf[5:9], uint32(hd.TotalParticles))
	binary.LittleEndian.PutUint32(buf[9:13], uint32(hd.TotalPhotons))
	binary.LittleEndian.PutUint32(buf[13:17], math.Float32bits(hd.MaxEnergy))
	binary.LittleEndian.PutUint32(buf[17:21], math.Float32bits(hd.MinEnergy))
	binary.LittleEndian.PutUint32(buf[21:25],
		math.Float32bits(hd.TotalParticlesInSource))
	return buf
}

// ExpectedSize returns the byte length a file with this header should have:
// one slot for the header and one per record.
func (hd *Header) ExpectedSize() int64 {
	return (int64(hd.TotalParticles) + 1) * int64(hd.RecordSize)
}

// Merge folds another header's statistics into hd when the two files'
// records are about to be concatenated: counts and source totals add, energy
// bounds take the extremes. The mode tags must match exactly and the
// particle count must not overflow.
func (hd *Header) Merge(other *Header) error {
	if hd.Mode != other.Mode {
		return fmt.Errorf("cannot merge %q and %q headers: %w",
			hd.Mode[:], other.Mode[:], ErrModeMismatch)
	}

	// Corrupt headers can carry negative counts, so the sum is checked in
	// both directions.
	sum := int64(hd.TotalParticles) + int64(other.TotalParticles)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return fmt.Errorf("merging %d and %d particles: %w",
			hd.TotalParticles, other.TotalParticles, ErrTooManyParticles)
	}
	hd.TotalParticles = int32(sum)

	hd.TotalPhotons += other.TotalPhotons
	if other.MinEnergy < hd.MinEnergy { hd.MinEnergy = other.MinEnergy }
	if other.MaxEnergy > hd.MaxEnergy { hd.MaxEnergy = other.MaxEnergy }
	hd.TotalParticlesInSource += other.TotalParticlesInSource

	return nil
}

// SimilarTo returns true if two headers agree: mode tags and counts exactly,
// energies within 10 ULPs, and source totals within a coarser absolute
// tolerance. It's a verification helper, the operations never call it.
func (hd *Header) SimilarTo(other *Header) bool {
	return hd.Mode == other.Mode &&
		hd.TotalParticles == other.TotalParticles &&
		hd.TotalPhotons == other.TotalPhotons &&
		eq.Float32Ulps(hd.MaxEnergy, other.MaxEnergy, 10) &&
		eq.Float32Ulps(hd.MinEnergy, other.MinEnergy, 10) &&
		eq.Float32Eps(hd.TotalParticlesInSource,
			other.TotalParticlesInSource, 0.1)
}

// VerifySimilarTo is SimilarTo with an error wrapping ErrHeaderMismatch on
// failure, for callers that want to report the disagreement.
func (hd *Header) VerifySimilarTo(other *Header) error {
	if !hd.SimilarTo(other) {
		return fmt.Errorf("%v vs %v: %w", hd, other, ErrHeaderMismatch)
	}
	return nil
}
