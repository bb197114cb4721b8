package ops

import (
	"github.com/stevanpecic/Phaser/lib/phsp"
)

// ReaderOptions is applied to every input file the operations open. Set it
// once at startup, before any operation runs.
var ReaderOptions = phsp.Options{ }

func open(path string) (*phsp.Reader, error) {
	return phsp.OpenWith(path, ReaderOptions)
}
