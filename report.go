package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"

	"github.com/stevanpecic/Phaser/lib/phsp"
)

// headerJSON is the wire form of the info subcommand's JSON output. Field
// names match the ones downstream analysis scripts already parse.
type headerJSON struct {
	TotalParticles         int32   `json:"total_particles"`
	TotalPhotons           int32   `json:"total_photons"`
	MaximumEnergy          float32 `json:"maximum_energy"`
	MinimumEnergy          float32 `json:"minimum_energy"`
	TotalParticlesInSource float32 `json:"total_particles_in_source"`
}

func printInfo(path string, opt phsp.Options, format string) error {
	rd, err := phsp.OpenWith(path, opt)
	if err != nil { return err }
	defer rd.Close()
	hd := rd.Header

	switch format {
	case "json":
		out, err := json.MarshalIndent(headerJSON{
			TotalParticles:         hd.TotalParticles,
			TotalPhotons:           hd.TotalPhotons,
			MaximumEnergy:          hd.MaxEnergy,
			MinimumEnergy:          hd.MinEnergy,
			TotalParticlesInSource: hd.TotalParticlesInSource,
		}, "", "\t")
		if err != nil { return err }
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	case "human":
		fmt.Printf("Total particles: %d\n", hd.TotalParticles)
		fmt.Printf("Total photons: %d\n", hd.TotalPhotons)
		fmt.Printf("Total electrons/positrons: %d\n",
			hd.TotalParticles-hd.TotalPhotons)
		fmt.Printf("Maximum energy: %.4f MeV\n", hd.MaxEnergy)
		fmt.Printf("Minimum energy: %.4f MeV\n", hd.MinEnergy)
		fmt.Printf("Incident particles from source: %.1f\n",
			hd.TotalParticlesInSource)
		return nil
	default:
		return fmt.Errorf("unknown info format %q, must be human or json",
			format)
	}
}

func printRecords(
	path string, opt phsp.Options, fields []string, number int64,
) error {
	rd, err := phsp.OpenWith(path, opt)
	if err != nil { return err }
	defer rd.Close()

	for _, field := range fields {
		fmt.Printf("%-16s", field)
	}
	fmt.Println()

	for i := int64(0); i < number; i++ {
		rec, err := rd.Next()
		if err == io.EOF { break }
		if err != nil { return err }

		for _, field := range fields {
			switch field {
			case "weight":
				fmt.Printf("%-16v", rec.Weight())
			case "energy":
				fmt.Printf("%-16v", rec.Energy())
			case "x":
				fmt.Printf("%-16v", rec.XCm)
			case "y":
				fmt.Printf("%-16v", rec.YCm)
			case "x_cos":
				fmt.Printf("%-16v", rec.XCos)
			case "y_cos":
				fmt.Printf("%-16v", rec.YCos)
			case "produced":
				fmt.Printf("%-16v", rec.BremsstrahlungOrAnnihilation())
			case "charged":
				fmt.Printf("%-16v", rec.Charged())
			case "r":
				r := math.Sqrt(float64(rec.XCm*rec.XCm + rec.YCm*rec.YCm))
				fmt.Printf("%-16v", r)
			default:
				return fmt.Errorf("unknown field %q", field)
			}
		}
		fmt.Println()
	}
	return nil
}
