package ops

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/stevanpecic/Phaser/lib/phsp"
)

// Combine merges the headers of every input file and concatenates their
// records into outputPath. Records keep their on-disk order within each
// file, and files appear in the given input order. All inputs must share
// one mode tag. With delete set, each input is removed as soon as its
// records have been copied; there is no rollback if a later file fails.
//
// Combine panics on an empty input list: callers are expected to have
// checked that there is something to combine.
func Combine(inputPaths []string, outputPath string, delete bool) error {
	if len(inputPaths) == 0 { panic("ops.Combine: no input files") }

	// First pass: peek at every header and fold it into the accumulator.
	final, err := peekHeader(inputPaths[0])
	if err != nil { return err }
	for _, path := range inputPaths[1:] {
		hd, err := peekHeader(path)
		if err != nil { return err }
		if err := final.Merge(hd); err != nil { return err }
	}

	log.WithFields(log.Fields{
		"particles": final.TotalParticles, "photons": final.TotalPhotons,
		"minEnergy": final.MinEnergy, "maxEnergy": final.MaxEnergy,
		"source":    final.TotalParticlesInSource,
	}).Info("merged header")

	wr, err := phsp.Create(outputPath, final)
	if err != nil { return err }

	// Second pass: stream every input's records into the output.
	for _, path := range inputPaths {
		if err := copyRecords(path, wr); err != nil {
			wr.Close()
			return err
		}
		if delete {
			if err := os.Remove(path); err != nil {
				wr.Close()
				return err
			}
		}
	}

	return wr.Close()
}

// peekHeader opens a file just long enough to read its header.
func peekHeader(path string) (*phsp.Header, error) {
	rd, err := open(path)
	if err != nil { return nil, err }
	hd := rd.Header
	rd.Close()
	return &hd, nil
}

func copyRecords(path string, wr *phsp.Writer) error {
	rd, err := open(path)
	if err != nil { return err }
	defer rd.Close()

	for {
		rec, err := rd.Next()
		if err == io.EOF { return nil }
		if err != nil { return err }
		if err := wr.Write(&rec); err != nil { return err }
	}
}
