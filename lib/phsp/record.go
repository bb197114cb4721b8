package phsp

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/stevanpecic/Phaser/lib/eq"
)

// Latch bit masks. Bit 0 marks particles produced by bremsstrahlung or
// annihilation, bit 29 is an auxiliary boundary-crossing flag, and bit 30
// answers two different questions: "is the particle charged?" and "did it
// cross a region boundary multiple times?". The remaining masks select the
// bit-region and region-number fields.
const (
	latchBremsstrahlung  = 1 << 0
	latchBitRegionMask   = 0xfffffe
	latchRegionNumMask   = 0xf000000
	latchB29             = 1 << 29
	latchCharged         = 1 << 30
)

// Record is one particle crossing event. The raw total-energy and weight
// floats are sign-encoded on disk (a negative energy marks the first scoring
// event of the particle's primary history, a negative weight marks a
// negative z direction cosine), so they stay unexported here and the
// magnitudes and flags are read through accessors. Everything downstream of
// the codec sees only the decoded quantities.
type Record struct {
	Latch  uint32
	energy float32
	XCm    float32
	YCm    float32
	XCos   float32
	YCos   float32
	weight float32
	// zLast is only meaningful for records read from (or headed to) MODE2
	// streams.
	zLast float32
}

// NewRecord builds a record from decoded quantities: energy and weight are
// magnitudes, firstScored and zPositive set the flags their signs encode.
func NewRecord(
	latch uint32, energy float32, firstScored bool,
	xCm, yCm, xCos, yCos float32, weight float32, zPositive bool,
) Record {
	energy = float32(math.Abs(float64(energy)))
	if firstScored { energy = -energy }
	weight = float32(math.Abs(float64(weight)))
	if !zPositive { weight = -weight }
	return Record{ latch, energy, xCm, yCm, xCos, yCos, weight, 0 }
}

// DecodeRecord unpacks one record-sized slot. buf must hold at least
// hd.RecordSize bytes.
func DecodeRecord(buf []byte, hd *Header) Record {
	rec := Record{
		Latch:  binary.LittleEndian.Uint32(buf[0:4]),
		energy: math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		XCm:    math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])),
		YCm:    math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16])),
		XCos:   math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])),
		YCos:   math.Float32frombits(binary.LittleEndian.Uint32(buf[20:24])),
		weight: math.Float32frombits(binary.LittleEndian.Uint32(buf[24:28])),
	}
	if hd.UsingZLast {
		rec.zLast = math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32]))
	}
	return rec
}

// Encode packs the record into buf, which must hold MaxRecordLength bytes.
// Only the first hd.RecordSize bytes are meaningful; the caller truncates
// the write to that width.
func (rec *Record) Encode(buf []byte, hd *Header) {
	binary.LittleEndian.PutUint32(buf[0:4], rec.Latch)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(rec.energy))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(rec.XCm))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(rec.YCm))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(rec.XCos))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(rec.YCos))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(rec.weight))
	if hd.UsingZLast {
		binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(rec.zLast))
	}
}

// Energy returns the particle's total energy in MeV.
func (rec *Record) Energy() float32 {
	return float32(math.Abs(float64(rec.energy)))
}

// FirstScoredByPrimaryHistory returns true if this is the first scoring
// event of the particle's primary history.
func (rec *Record) FirstScoredByPrimaryHistory() bool {
	return math.Signbit(float64(rec.energy))
}

// Weight returns the record's statistical weight.
func (rec *Record) Weight() float32 {
	return float32(math.Abs(float64(rec.weight)))
}

// SetWeight replaces the weight magnitude, preserving the z-direction sign
// the stored float carries.
func (rec *Record) SetWeight(weight float32) {
	if math.Signbit(float64(rec.weight)) {
		rec.weight = -float32(math.Abs(float64(weight)))
	} else {
		rec.weight = float32(math.Abs(float64(weight)))
	}
}

// ZPositive returns true if the z direction cosine is positive.
func (rec *Record) ZPositive() bool {
	return !math.Signbit(float64(rec.weight))
}

// ZCos returns the z direction cosine, which is never stored: the three
// cosines form a unit vector, so it follows from the other two.
func (rec *Record) ZCos() float32 {
	return float32(math.Sqrt(
		float64(1.0 - (rec.XCos*rec.XCos + rec.YCos*rec.YCos))))
}

// ZLast returns the z position of the particle's last interaction. It is
// zero for records read from MODE0 streams.
func (rec *Record) ZLast() float32 { return rec.zLast }

// SetZLast sets the trailing last-z field, written only to MODE2 streams.
func (rec *Record) SetZLast(z float32) { rec.zLast = z }

func (rec *Record) BremsstrahlungOrAnnihilation() bool {
	return rec.Latch&latchBremsstrahlung != 0
}

func (rec *Record) BitRegion() uint32 {
	return rec.Latch & latchBitRegionMask
}

func (rec *Record) RegionNumber() uint32 {
	return rec.Latch & latchRegionNumMask
}

func (rec *Record) B29() bool {
	return rec.Latch&latchB29 != 0
}

func (rec *Record) Charged() bool {
	return rec.Latch&latchCharged != 0
}

// CrossedMultiple reads the same bit as Charged: the format reuses bit 30
// for "crossed region boundary multiple times".
func (rec *Record) CrossedMultiple() bool {
	return rec.Latch&latchCharged != 0
}

// Transform applies the first two rows of a 3x3 transformation matrix to the
// record in the scoring plane. Position is transformed as (x, y, 1), so the
// third column can carry a translation. Direction is transformed as the 3D
// unit vector (x_cos, y_cos, z_cos) projected back onto its first two
// components, which is not the same map as the one applied to position.
func (rec *Record) Transform(m *[3][3]float32) {
	x, y := rec.XCm, rec.YCm
	rec.XCm = m[0][0]*x + m[0][1]*y + m[0][2]
	rec.YCm = m[1][0]*x + m[1][1]*y + m[1][2]

	xCos, yCos, zCos := rec.XCos, rec.YCos, rec.ZCos()
	rec.XCos = m[0][0]*xCos + m[0][1]*yCos + m[0][2]*zCos
	rec.YCos = m[1][0]*xCos + m[1][1]*yCos + m[1][2]*zCos
}

// SimilarTo returns true if two records agree within an absolute tolerance
// of 0.01 on every float field. Like Header.SimilarTo it exists for
// verification, not for the operations.
func (rec *Record) SimilarTo(other *Record) bool {
	return rec.Latch == other.Latch &&
		eq.Float32Eps(rec.Energy(), other.Energy(), 0.01) &&
		eq.Float32Eps(rec.XCm, other.XCm, 0.01) &&
		eq.Float32Eps(rec.YCm, other.YCm, 0.01) &&
		eq.Float32Eps(rec.XCos, other.XCos, 0.01) &&
		eq.Float32Eps(rec.YCos, other.YCos, 0.01) &&
		eq.Float32Eps(rec.weight, other.weight, 0.01) &&
		rec.zLast == other.zLast
}

// VerifySimilarTo is SimilarTo with an error wrapping ErrRecordMismatch on
// failure.
func (rec *Record) VerifySimilarTo(other *Record) error {
	if !rec.SimilarTo(other) {
		return fmt.Errorf("%v vs %v: %w", rec, other, ErrRecordMismatch)
	}
	return nil
}
