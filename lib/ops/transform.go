/*package ops implements the record-level operations on phase space files:
geometric transforms, multi-file combination, probabilistic subsampling, and
the twist driver built on top of the transform. Each operation opens its
inputs through phsp.Reader, streams records once, and drives a single
phsp.Writer, so memory stays bounded no matter how many records a file
holds.*/
package ops

import (
	"io"
	"math"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/stevanpecic/Phaser/lib/phsp"
)

// Rotation returns the 3x3 matrix rotating by theta radians counter
// clockwise about the z axis. The third row and column are identity so the
// matrix shape could also carry a translation, though no operation uses one.
func Rotation(theta float64) *mat.Dense {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return mat.NewDense(3, 3, []float64{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	})
}

// matrix33 narrows a gonum matrix to the float32 array the per-record hot
// loop works with.
func matrix33(m *mat.Dense) [3][3]float32 {
	var out [3][3]float32
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float32(m.At(i, j))
		}
	}
	return out
}

// Transform applies m to every record of inputPath and writes the result to
// outputPath, leaving the header unchanged. When the two paths are equal the
// file is rewritten in place: the output goes to a temporary file in the
// same directory which replaces the original only after every record has
// been written, so a failure part-way leaves the input intact. It returns
// the number of records transformed; callers compare it against the
// header's declared count as a sanity signal.
func Transform(inputPath, outputPath string, m *mat.Dense) (int64, error) {
	rd, err := open(inputPath)
	if err != nil { return 0, err }
	defer rd.Close()

	inPlace := inputPath == outputPath
	writePath := outputPath
	if inPlace {
		info, err := os.Stat(inputPath)
		if err != nil { return 0, err }
		tmp, err := os.CreateTemp(filepath.Dir(inputPath), ".phaser-rotate-*")
		if err != nil { return 0, err }
		writePath = tmp.Name()
		// CreateTemp uses mode 0600; the file replacing the input should
		// keep the input's permissions.
		if err := tmp.Chmod(info.Mode()); err != nil {
			tmp.Close()
			os.Remove(writePath)
			return 0, err
		}
		// Create below reopens it with the right flags.
		tmp.Close()
	}

	n, err := transformRecords(rd, writePath, matrix33(m))
	if err != nil {
		if inPlace { os.Remove(writePath) }
		return n, err
	}

	if inPlace {
		// The reader is done with the original file; replace it atomically.
		rd.Close()
		if err := os.Rename(writePath, outputPath); err != nil {
			os.Remove(writePath)
			return n, err
		}
	}

	if n != int64(rd.Header.TotalParticles) {
		log.WithFields(log.Fields{
			"file": inputPath, "transformed": n,
			"expected": rd.Header.TotalParticles,
		}).Warn("transformed record count does not match header")
	}
	return n, nil
}

func transformRecords(
	rd *phsp.Reader, writePath string, m [3][3]float32,
) (int64, error) {
	wr, err := phsp.Create(writePath, &rd.Header)
	if err != nil { return 0, err }

	n := int64(0)
	for {
		rec, err := rd.Next()
		if err == io.EOF { break }
		if err != nil {
			wr.Close()
			return n, err
		}

		rec.Transform(&m)
		if err := wr.Write(&rec); err != nil {
			wr.Close()
			return n, err
		}
		n++
	}

	return n, wr.Close()
}
