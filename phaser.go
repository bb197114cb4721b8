/*Phaser transforms and inspects .egsphsp phase space files. It wraps the
operations in lib/ops: rotating a file about the beam axis, combining many
files into one, and drawing a random subsample, plus commands for printing
header and record fields.*/
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/stevanpecic/Phaser/lib/ops"
)

func main() {
	if err := newApp(loadConfiguration()).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. The root flags mirror the configuration
// file's settings and take precedence over it: the file is folded in first
// and any flag the user set on the command line overwrites its value before
// the configuration is applied.
func newApp(conf Configuration) *cli.Command {
	var strict bool
	var buffer int64
	return &cli.Command{
		Name:  "phaser",
		Usage: "Transform and inspect .egsphsp phase space files",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "fail on files whose byte length does not match their header",
				Destination: &strict,
			},
			&cli.Int64Flag{
				Name:        "buffer",
				Usage:       "read buffer size in bytes",
				Destination: &buffer,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.IsSet("strict") { conf.Strict = strict }
			if cmd.IsSet("buffer") { conf.Buffer = int(buffer) }
			conf.apply()
			return ctx, nil
		},
		Commands: []*cli.Command{
			infoCmd(), printCmd(), rotateCmd(), twistCmd(),
			combineCmd(), shoutCmd(), sampleCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
}

// floatify parses an angle argument, tolerating the parenthesized form,
// "(0.785)", that scripted callers tend to produce.
func floatify(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func infoCmd() *cli.Command {
	var format string
	return &cli.Command{
		Name:      "info",
		Usage:     "Basic information on phase space file",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output information in json or human format",
				Value:       "human",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("info takes exactly one input file")
			}
			return printInfo(cmd.Args().First(), ops.ReaderOptions, format)
		},
	}
}

func printCmd() *cli.Command {
	var number int64
	return &cli.Command{
		Name:      "print",
		Usage:     "Print the specified fields in the specified order for n (or all) records",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "record field to print (weight, energy, x, y, x_cos, y_cos, produced, charged, r)",
			},
			&cli.Int64Flag{
				Name:        "number",
				Aliases:     []string{"n"},
				Usage:       "number of records to print",
				Value:       10,
				Destination: &number,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fields := cmd.StringSlice("field")
			if len(fields) == 0 {
				return fmt.Errorf("print requires at least one --field")
			}
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("print takes exactly one input file")
			}
			return printRecords(cmd.Args().First(), ops.ReaderOptions,
				fields, number)
		},
	}
}

func rotateCmd() *cli.Command {
	var angleArg string
	var inPlace bool
	return &cli.Command{
		Name:      "rotate",
		Usage:     "Rotate by --angle radians counter clockwise around z axis",
		ArgsUsage: "<input> [output]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "angle",
				Aliases:     []string{"a"},
				Usage:       "counter clockwise angle in radians to rotate around Z axis",
				Required:    true,
				Destination: &angleArg,
			},
			&cli.BoolFlag{
				Name:        "in-place",
				Aliases:     []string{"i"},
				Usage:       "transform input file in-place",
				Destination: &inPlace,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			angle, err := floatify(angleArg)
			if err != nil {
				return fmt.Errorf("cannot parse angle %q: %v", angleArg, err)
			}

			inputPath := cmd.Args().First()
			if inputPath == "" {
				return fmt.Errorf("rotate requires an input file")
			}
			outputPath := inputPath
			if !inPlace {
				outputPath = cmd.Args().Get(1)
				if outputPath == "" {
					return fmt.Errorf("rotate requires an output file unless --in-place is set")
				}
			}

			n, err := ops.Transform(inputPath, outputPath, ops.Rotation(angle))
			if err != nil { return err }
			log.WithFields(log.Fields{
				"input": inputPath, "output": outputPath,
				"angle": angle, "records": n,
			}).Info("rotated file")
			return nil
		},
	}
}

func twistCmd() *cli.Command {
	var iterations, seed int64
	return &cli.Command{
		Name:      "twist",
		Usage:     "Rotate r times by a random increment",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "iterations",
				Aliases:     []string{"r"},
				Usage:       "number of iterations",
				Required:    true,
				Destination: &iterations,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "seed for the random angle sequence",
				Destination: &seed,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("twist takes exactly one input file")
			}
			return ops.Twist(cmd.Args().First(), int(iterations), uint64(seed))
		},
	}
}

func combineCmd() *cli.Command {
	var outputPath string
	var deleteInputs bool
	return &cli.Command{
		Name:      "combine",
		Usage:     "Combine phase space from one or more input files into output file",
		ArgsUsage: "<input>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "combined output file",
				Required:    true,
				Destination: &outputPath,
			},
			&cli.BoolFlag{
				Name:        "delete",
				Aliases:     []string{"d"},
				Usage:       "delete input files as they are used (no going back!)",
				Destination: &deleteInputs,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputPaths := cmd.Args().Slice()
			if len(inputPaths) == 0 {
				return fmt.Errorf("combine requires at least one input file")
			}
			log.WithFields(log.Fields{
				"inputs": len(inputPaths), "output": outputPath,
			}).Info("combining files")
			return ops.Combine(inputPaths, outputPath, deleteInputs)
		},
	}
}

// shoutCmd is combine-with-delete for the files the twist command leaves
// behind.
func shoutCmd() *cli.Command {
	var outputPath string
	return &cli.Command{
		Name:      "shout",
		Usage:     "Combine phase space files from twist algorithm",
		ArgsUsage: "<input>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "combined output file",
				Value:       "tns.egsphsp1",
				Destination: &outputPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputPaths := cmd.Args().Slice()
			if len(inputPaths) == 0 {
				return fmt.Errorf("shout requires at least one input file")
			}
			log.WithFields(log.Fields{
				"inputs": len(inputPaths), "output": outputPath,
			}).Info("combining files")
			return ops.Combine(inputPaths, outputPath, true)
		},
	}
}

func sampleCmd() *cli.Command {
	var rate, seed int64
	var outputPath string
	return &cli.Command{
		Name:      "sample",
		Usage:     "Sample particles from phase space - does not adjust weights",
		ArgsUsage: "<input>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "sampled output file",
				Required:    true,
				Destination: &outputPath,
			},
			&cli.Int64Flag{
				Name:        "rate",
				Usage:       "inverse sample rate - 10 means take roughly 1 out of every 10 particles",
				Value:       10,
				Destination: &rate,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "seed as an unsigned integer",
				Destination: &seed,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputPaths := cmd.Args().Slice()
			if len(inputPaths) == 0 {
				return fmt.Errorf("sample requires at least one input file")
			}
			if rate < 1 {
				return fmt.Errorf("sample rate must be at least 1, not %d", rate)
			}

			kept, err := ops.Sample(inputPaths, outputPath,
				uint32(rate), uint64(seed))
			if err != nil { return err }
			log.WithFields(log.Fields{
				"inputs": len(inputPaths), "output": outputPath,
				"rate": rate, "kept": kept,
			}).Info("sampled files")
			return nil
		},
	}
}
