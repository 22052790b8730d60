package main

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/normals"
	"github.com/osuushi/normals/dbg"
	"github.com/osuushi/normals/index"
	"github.com/rs/zerolog"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Estimate normals for a point cloud. Input on stdin is newline separated
// points in the form "x y". Output is one line per point, "x y nx ny", in input
// order.
var (
	app = kingpin.New("normals", "Estimate normals of a 2D point cloud by local PCA.")

	configPath = app.Flag("config", "YAML config file.").ExistingFile()
	kFlag      = app.Flag("k", "Neighborhood size, including the point itself.").Short('k').Action(markSet("k")).Int()
	refineFlag = app.Flag("refine", "Run one orientation refinement pass.").Action(markSet("refine")).Bool()
	indexFlag  = app.Flag("index", "Spatial index: kdtree or brute.").Action(markSet("index")).String()
	workers    = app.Flag("workers", "Goroutines per pass.").Action(markSet("workers")).Int()
	pngPath    = app.Flag("png", "Also render the cloud and its normals to this PNG.").String()
	showImage  = app.Flag("imgcat", "Print the rendering to the terminal (iTerm only).").Bool()
	scale      = app.Flag("scale", "Pixels per unit in the rendering.").Default("10").Float64()
	noColor    = app.Flag("no-color", "Don't highlight normals changed by refinement.").Bool()
)

// Names of the config flags given on the command line, including negated
// booleans like --no-refine.
var setByUser = map[string]bool{}

func markSet(name string) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		setByUser[name] = true
		return nil
	}
}

func parseFlags(args []string) error {
	setByUser = map[string]bool{}
	_, err := app.Parse(args)
	return err
}

func main() {
	app.FatalIfError(parseFlags(os.Args[1:]), "")

	config := DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = LoadConfig(*configPath)
		app.FatalIfError(err, "")
	}
	applyFlags(&config)
	app.FatalIfError(config.Validate(), "")

	level, _ := zerolog.ParseLevel(config.LogLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	output := outputOptions{
		png:    *pngPath,
		imgcat: *showImage,
		scale:  *scale,
		color:  !*noColor,
	}
	if err := run(config, output, os.Stdin, os.Stdout, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed")
	}
}

// Flags given on the command line win over the config file, whatever their
// value.
func applyFlags(config *Config) {
	if setByUser["k"] {
		config.K = *kFlag
	}
	if setByUser["refine"] {
		config.Refine = *refineFlag
	}
	if setByUser["index"] {
		config.Index = *indexFlag
	}
	if setByUser["workers"] {
		config.Workers = *workers
	}
}

type outputOptions struct {
	png    string
	imgcat bool
	scale  float64
	color  bool
}

func run(config Config, output outputOptions, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	points, err := readPoints(in)
	if err != nil {
		return err
	}
	logger.Debug().Int("points", len(points)).Msg("read input")

	idx := newIndex(config.Index, points)
	opts := normals.Options{Workers: config.Workers}
	result, err := normals.EstimateNormalsWithOptions(idx, config.K, opts)
	if err != nil {
		return err
	}
	logger.Info().Int("points", len(points)).Int("k", config.K).Str("index", config.Index).Msg("estimated normals")

	var changed []bool
	if config.Refine {
		before := append([]normals.Vector(nil), result...)
		if err := normals.RefineOrientationWithOptions(idx, config.K, result, opts); err != nil {
			return err
		}
		changed = changedNormals(before, result)
		logger.Info().Int("changed", countTrue(changed)).Msg("refined orientation")
	}

	au := aurora.NewAurora(output.color)
	for i, p := range points {
		line := formatLine(p, result[i])
		if changed != nil && changed[i] {
			fmt.Fprintln(out, au.Yellow(line))
		} else {
			fmt.Fprintln(out, line)
		}
	}

	if output.png != "" {
		if err := dbg.SavePNG(output.png, points, result, changed, output.scale, 1); err != nil {
			return err
		}
		logger.Debug().Str("path", output.png).Msg("saved rendering")
		if output.imgcat {
			if err := dbg.Cat(output.png, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func newIndex(kind string, points []normals.Point) normals.SpatialIndex {
	if kind == "brute" {
		return index.NewBruteForce(points)
	}
	return index.NewKDTree(points)
}

// Refinement keeps signs, so a normal has changed if its direction moved.
func changedNormals(before, after []normals.Vector) []bool {
	changed := make([]bool, len(before))
	for i := range before {
		changed[i] = before[i].Dot(after[i]) < 1-1e-9
	}
	return changed
}

func countTrue(flags []bool) int {
	count := 0
	for _, f := range flags {
		if f {
			count++
		}
	}
	return count
}
