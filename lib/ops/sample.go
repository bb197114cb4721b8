package ops

import (
	"fmt"
	"io"
	"math"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/stevanpecic/Phaser/lib/phsp"
	"github.com/stevanpecic/Phaser/lib/rng"
)

// minEnergySentinel starts the min-energy accumulator above any physical
// particle energy so the first retained record always lowers it.
const minEnergySentinel = 1000.0

// Sample draws a uniform random subset of the input files' records into
// outputPath, keeping each record independently with probability 1/rate.
// The draw comes from a deterministic generator, so the same seed over the
// same inputs keeps the same records. Inputs must all be MODE0. The output
// header's counts and energy bounds are recomputed from the retained subset
// only, and the summed source-particle total is divided by rate to correct
// for the subsampling.
//
// Record weights are not renormalized; that is a documented simplification
// of this operation, not an oversight.
//
// Like Combine, Sample panics on an empty input list. It returns the number
// of records kept.
func Sample(
	inputPaths []string, outputPath string, rate uint32, seed uint64,
) (int32, error) {
	if len(inputPaths) == 0 { panic("ops.Sample: no input files") }

	gen := rng.New(seed)
	hd := &phsp.Header{
		Mode:       phsp.Mode0,
		RecordSize: 28,
		MinEnergy:  minEnergySentinel,
	}

	// The header written here is a placeholder; it is rewritten in place
	// once the real counts are known.
	wr, err := phsp.Create(outputPath, hd)
	if err != nil { return 0, err }

	for _, path := range inputPaths {
		if err := sampleFile(path, wr, gen, rate, hd); err != nil {
			wr.Close()
			return hd.TotalParticles, err
		}
		log.WithFields(log.Fields{
			"file": path, "kept": hd.TotalParticles,
		}).Info("sampled input file")
	}

	hd.TotalParticlesInSource /= float32(rate)

	if err := wr.Close(); err != nil { return hd.TotalParticles, err }
	return hd.TotalParticles, rewriteHeader(outputPath, hd)
}

func sampleFile(
	path string, wr *phsp.Writer, gen *rng.RNG, rate uint32, hd *phsp.Header,
) error {
	rd, err := open(path)
	if err != nil { return err }
	defer rd.Close()

	if rd.Header.UsingZLast {
		return fmt.Errorf("sample input %s is a MODE2 file: %w",
			path, phsp.ErrModeMismatch)
	}
	hd.TotalParticlesInSource += rd.Header.TotalParticlesInSource

	for {
		rec, err := rd.Next()
		if err == io.EOF { return nil }
		if err != nil { return err }

		// One draw per record, before looking at it, so the keep mask
		// depends only on the seed and the record index.
		if !gen.Bool(rate) { continue }

		if hd.TotalParticles == math.MaxInt32 {
			return fmt.Errorf("sampling %s: %w", path, phsp.ErrTooManyParticles)
		}
		hd.TotalParticles++
		if !rec.Charged() { hd.TotalPhotons++ }

		// First-scored records carry a negative raw energy; they are
		// excluded from the energy bounds along with zero-energy records.
		if !rec.FirstScoredByPrimaryHistory() && rec.Energy() > 0 {
			if rec.Energy() < hd.MinEnergy { hd.MinEnergy = rec.Energy() }
			if rec.Energy() > hd.MaxEnergy { hd.MaxEnergy = rec.Energy() }
		}

		if err := wr.Write(&rec); err != nil { return err }
	}
}

// rewriteHeader overwrites the header slot at the start of path without
// touching the records after it.
func rewriteHeader(path string, hd *phsp.Header) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0666)
	if err != nil { return err }

	wr, err := phsp.NewWriter(f, hd)
	if err != nil {
		f.Close()
		return err
	}
	if err := wr.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
