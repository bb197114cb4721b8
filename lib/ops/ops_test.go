package ops

import (
	"io"
	"testing"

	"github.com/stevanpecic/Phaser/lib/phsp"
)

// newTestHeader builds a MODE0 header whose statistics match the records
// returned by testRecords.
func newTestHeader() *phsp.Header {
	return &phsp.Header{
		Mode:                   phsp.Mode0,
		RecordSize:             28,
		TotalParticles:         2,
		TotalPhotons:           1,
		MinEnergy:              0.5,
		MaxEnergy:              2.0,
		TotalParticlesInSource: 100.0,
	}
}

// testRecords returns one photon and one electron, neither first-scored, so
// every aggregate statistic can be recomputed from them exactly.
func testRecords() []phsp.Record {
	return []phsp.Record{
		phsp.NewRecord(0, 0.5, false, 1, 0, 0.3, 0.4, 1.0, true),
		phsp.NewRecord(1<<30, 2.0, false, -1, 2, 0, 0.6, 0.5, false),
	}
}

func writeFile(
	t *testing.T, path string, hd *phsp.Header, recs []phsp.Record,
) {
	t.Helper()
	wr, err := phsp.Create(path, hd)
	if err != nil { t.Fatalf("Create(%s) failed: %s", path, err.Error()) }
	for i := range recs {
		if err := wr.Write(&recs[i]); err != nil {
			t.Fatalf("Write failed: %s", err.Error())
		}
	}
	if err := wr.Close(); err != nil {
		t.Fatalf("Close failed: %s", err.Error())
	}
}

func readFile(t *testing.T, path string) (phsp.Header, []phsp.Record) {
	t.Helper()
	rd, err := open(path)
	if err != nil { t.Fatalf("Open(%s) failed: %s", path, err.Error()) }
	defer rd.Close()

	var recs []phsp.Record
	for {
		rec, err := rd.Next()
		if err == io.EOF { break }
		if err != nil { t.Fatalf("Next failed: %s", err.Error()) }
		recs = append(recs, rec)
	}
	return rd.Header, recs
}
