package phsp

import (
	"errors"
	"math"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		mode       [ModeLength]byte
		recordSize int
		usingZLast bool
	} {
		{Mode0, 28, false},
		{Mode2, 32, true},
	}

	for i := range tests {
		hd := &Header{
			Mode:                   tests[i].mode,
			TotalParticles:         123456,
			TotalPhotons:           54321,
			MinEnergy:              0.511,
			MaxEnergy:              6.25,
			TotalParticlesInSource: 1e7 + 0.5,
			RecordSize:             tests[i].recordSize,
			UsingZLast:             tests[i].usingZLast,
		}

		buf := hd.Encode()
		if len(buf) != tests[i].recordSize {
			t.Errorf("%d) Encode returned %d bytes, expected %d.",
				i, len(buf), tests[i].recordSize)
			continue
		}
		for j := HeaderLength; j < len(buf); j++ {
			if buf[j] != 0 {
				t.Errorf("%d) padding byte %d is %d, expected 0.", i, j, buf[j])
			}
		}

		out, err := DecodeHeader(buf)
		if err != nil {
			t.Errorf("%d) DecodeHeader failed: %s", i, err.Error())
		} else if *out != *hd {
			t.Errorf("%d) decoded %v, expected %v.", i, out, hd)
		}
	}
}

func TestDecodeHeaderBadMode(t *testing.T) {
	tags := []string{ "MODE1", "MODE3", "mode0", "ABCDE", "\x00\x00\x00\x00\x00" }

	for i := range tags {
		buf := make([]byte, HeaderLength)
		copy(buf, tags[i])

		_, err := DecodeHeader(buf)
		if err == nil {
			t.Errorf("%d) expected tag %q to fail, but got no error.",
				i, tags[i])
		} else if !errors.Is(err, ErrBadMode) {
			t.Errorf("%d) expected ErrBadMode for tag %q, got '%s'.",
				i, tags[i], err.Error())
		}
	}
}

func TestHeaderExpectedSize(t *testing.T) {
	hd := &Header{ Mode: Mode0, RecordSize: 28, TotalParticles: 10 }
	if size := hd.ExpectedSize(); size != 11*28 {
		t.Errorf("Expected size %d, got %d.", 11*28, size)
	}

	hd = &Header{ Mode: Mode2, RecordSize: 32, TotalParticles: 0 }
	if size := hd.ExpectedSize(); size != 32 {
		t.Errorf("Expected size %d, got %d.", 32, size)
	}
}

func TestHeaderMerge(t *testing.T) {
	x := Header{ Mode: Mode0, RecordSize: 28, TotalParticles: 2,
		TotalPhotons: 1, MinEnergy: 0.5, MaxEnergy: 2.0,
		TotalParticlesInSource: 100.0 }
	y := Header{ Mode: Mode0, RecordSize: 28, TotalParticles: 3,
		TotalPhotons: 3, MinEnergy: 0.25, MaxEnergy: 1.5,
		TotalParticlesInSource: 50.0 }

	hd := x
	if err := hd.Merge(&y); err != nil {
		t.Fatalf("Merge failed: %s", err.Error())
	}
	if hd.TotalParticles != 5 {
		t.Errorf("merged particles = %d, expected 5.", hd.TotalParticles)
	}
	if hd.TotalPhotons != 4 {
		t.Errorf("merged photons = %d, expected 4.", hd.TotalPhotons)
	}
	if hd.MinEnergy != 0.25 {
		t.Errorf("merged min energy = %g, expected 0.25.", hd.MinEnergy)
	}
	if hd.MaxEnergy != 2.0 {
		t.Errorf("merged max energy = %g, expected 2.0.", hd.MaxEnergy)
	}
	if hd.TotalParticlesInSource != 150.0 {
		t.Errorf("merged source total = %g, expected 150.",
			hd.TotalParticlesInSource)
	}
}

func TestHeaderMergeModeMismatch(t *testing.T) {
	x := Header{ Mode: Mode0, RecordSize: 28 }
	y := Header{ Mode: Mode2, RecordSize: 32, UsingZLast: true }

	if err := x.Merge(&y); !errors.Is(err, ErrModeMismatch) {
		t.Errorf("expected ErrModeMismatch, got %v.", err)
	}
}

func TestHeaderMergeOverflow(t *testing.T) {
	x := Header{ Mode: Mode0, RecordSize: 28, TotalParticles: math.MaxInt32 }
	y := Header{ Mode: Mode0, RecordSize: 28, TotalParticles: 1 }

	if err := x.Merge(&y); !errors.Is(err, ErrTooManyParticles) {
		t.Errorf("expected ErrTooManyParticles, got %v.", err)
	}

	// Negative counts only show up in corrupt headers, but they must not
	// wrap around silently either.
	x = Header{ Mode: Mode0, RecordSize: 28, TotalParticles: math.MinInt32 }
	y = Header{ Mode: Mode0, RecordSize: 28, TotalParticles: -1 }

	if err := x.Merge(&y); !errors.Is(err, ErrTooManyParticles) {
		t.Errorf("expected ErrTooManyParticles on underflow, got %v.", err)
	}
}

func TestHeaderSimilarTo(t *testing.T) {
	base := Header{ Mode: Mode0, RecordSize: 28, TotalParticles: 2,
		TotalPhotons: 1, MinEnergy: 0.5, MaxEnergy: 2.0,
		TotalParticlesInSource: 100.0 }

	nudged := base
	// A few ULPs of drift on the energies and a small absolute shift on the
	// source total should still count as similar.
	nudged.MaxEnergy = math.Float32frombits(math.Float32bits(base.MaxEnergy) + 3)
	nudged.TotalParticlesInSource += 0.05

	tests := []struct {
		change func(hd *Header)
		similar bool
	} {
		{func(hd *Header) { }, true},
		{func(hd *Header) { *hd = nudged }, true},
		{func(hd *Header) { hd.TotalParticles++ }, false},
		{func(hd *Header) { hd.TotalPhotons-- }, false},
		{func(hd *Header) { hd.MaxEnergy += 0.25 }, false},
		{func(hd *Header) { hd.TotalParticlesInSource += 10 }, false},
		{func(hd *Header) {
			hd.Mode = Mode2
			hd.RecordSize, hd.UsingZLast = 32, true
		}, false},
	}

	for i := range tests {
		hd := base
		tests[i].change(&hd)

		if got := base.SimilarTo(&hd); got != tests[i].similar {
			t.Errorf("%d) SimilarTo = %v, expected %v.",
				i, got, tests[i].similar)
		}

		err := base.VerifySimilarTo(&hd)
		if tests[i].similar && err != nil {
			t.Errorf("%d) VerifySimilarTo failed: %s", i, err.Error())
		} else if !tests[i].similar && !errors.Is(err, ErrHeaderMismatch) {
			t.Errorf("%d) expected ErrHeaderMismatch, got %v.", i, err)
		}
	}
}
