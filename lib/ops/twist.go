package ops

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/stevanpecic/Phaser/lib/rng"
)

// Twist rotates the input file by freshly drawn random angles, writing one
// numbered output file per iteration: 1.egsphsp, 2.egsphsp, and so on. The
// angles come from a seeded generator so a run can be reproduced.
func Twist(inputPath string, iterations int, seed uint64) error {
	gen := rng.New(seed)

	for i := 1; i <= iterations; i++ {
		theta := gen.Angle()
		outputPath := fmt.Sprintf("%d.egsphsp", i)

		log.WithFields(log.Fields{
			"angle": theta, "output": outputPath,
		}).Info("twist rotation")

		if _, err := Transform(inputPath, outputPath, Rotation(theta)); err != nil {
			return err
		}
	}
	return nil
}
