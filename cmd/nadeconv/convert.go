package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lineup-tools/nadeconv/internal/dispatcher"
	"github.com/lineup-tools/nadeconv/internal/export/kidua"
	"github.com/lineup-tools/nadeconv/internal/export/mono"
	"github.com/lineup-tools/nadeconv/internal/handlers"
	"github.com/lineup-tools/nadeconv/internal/logging"
	"github.com/lineup-tools/nadeconv/internal/parser"
	"github.com/lineup-tools/nadeconv/internal/storage"
	"github.com/lineup-tools/nadeconv/internal/util"
	"github.com/lineup-tools/nadeconv/internal/worker"
	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// target describes which formats a subcommand produces and which config
// keys its --output flag sets.
type target struct {
	commands   []string
	outputKeys []string
}

var (
	convertMono       = target{[]string{worker.CommandMono}, []string{"mono.outputDir"}}
	convertPrimordial = target{[]string{worker.CommandPrimordial}, []string{"primordial.outputDir"}}
	convertKidua      = target{[]string{worker.CommandKidua}, []string{"kidua.outputDir"}}
	convertAll        = target{worker.AllCommands, []string{"mono.outputDir", "primordial.outputDir", "kidua.outputDir"}}
)

func newConvertCmd(a *app, use, short string, t target) *cobra.Command {
	var output string
	var split bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				if len(t.outputKeys) == 1 {
					viper.Set(t.outputKeys[0], output)
				} else {
					// one sub-directory per format under the given root
					for i, key := range t.outputKeys {
						viper.Set(key, filepath.Join(output, t.commands[i]))
					}
				}
			}
			if cmd.Flags().Changed("split") {
				viper.Set("kidua.splitByMap", split)
			}
			err := a.convert(cmd, t.commands)
			return errors.Join(err, a.teardown(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory")
	if use == "kidua" || use == "all" {
		cmd.Flags().BoolVar(&split, "split", false, "write one Kidua document per map")
	}
	return cmd
}

// errSource is returned unless exactly one of --input and --run is given
var errSource = errors.New(`exactly one of "--input" or "--run" is required`)

// convert reads the input document, or the lineups of a stored run, and runs
// the given format commands.
func (a *app) convert(cmd *cobra.Command, commands []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if (a.input == "") == (a.runID == 0) {
		return errSource
	}

	backend, err := createBackend(a.log)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			a.log.Error().Err(err).Msg("Failed to close storage backend")
		}
	}()

	var collection core.Collection
	var source string
	if a.runID != 0 {
		collection, err = a.loadRun(out, backend)
		source = fmt.Sprintf("run %d", a.runID)
	} else {
		collection, err = a.readInput(out)
		source = a.input
	}
	if err != nil {
		return err
	}

	svc, err := handlers.NewService(handlers.Dependencies{
		Backend: backend,
		Logger:  a.log,
		Influx:  a.influx,
		Mono:    mono.Options{FileName: viper.GetString("mono.fileName")},
		Kidua: kidua.Options{
			FileName:   viper.GetString("kidua.fileName"),
			SplitByMap: viper.GetBool("kidua.splitByMap"),
		},
	}, handlers.NewRunContext())
	if err != nil {
		return err
	}

	d, err := dispatcher.New(logging.NewDispatcherLogger(a.log))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	wm := worker.NewManager(worker.Dependencies{Converter: svc, Logger: a.log})
	wm.RegisterHandlers(d)

	run, err := svc.StartRun(source, collection)
	if err != nil {
		return err
	}
	if run.ID != 0 {
		fmt.Fprintf(out, "run %d\n", run.ID)
	}

	conversions, err := wm.Run(ctx, d, commands, collection)
	if err != nil {
		return err
	}

	for _, conv := range conversions {
		printConversion(out, conv)
	}
	if exp, ok := backend.(storage.Exporter); ok {
		for _, p := range exp.ExportedPaths() {
			fmt.Fprintf(out, "wrote %s\n", p)
		}
	}
	return nil
}

// readInput parses the --input document.
func (a *app) readInput(out io.Writer) (core.Collection, error) {
	data, err := os.ReadFile(a.input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	format := parser.Format(viper.GetString("input.format"))
	if format == parser.FormatAuto || format == "" {
		format = parser.DetectFormat(a.input)
	}

	collection, report, err := parser.NewParser(a.log).ReadDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.input, err)
	}
	printRead(out, collection, report)
	return collection, nil
}

// loadRun reads the source lineups stored for --run back from the database.
func (a *app) loadRun(out io.Writer, backend storage.Backend) (core.Collection, error) {
	loader, ok := backend.(storage.Loader)
	if !ok {
		return nil, storage.ErrNoLoader
	}
	collection, err := loader.LoadCollection(a.runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", a.runID, err)
	}
	if len(collection) == 0 {
		return nil, fmt.Errorf("run %d has no stored lineups", a.runID)
	}

	for _, m := range collection.Maps() {
		fmt.Fprintf(out, "%s: loaded %d nades\n", m, len(collection[m]))
	}
	fmt.Fprintf(out, "loaded %d nades total from run %d\n", collection.Total(), a.runID)
	a.log.Info().Uint("run", a.runID).Int("maps", len(collection)).Int("lineups", collection.Total()).Msg("Loaded stored run")
	return collection, nil
}

func printRead(w io.Writer, c core.Collection, report parser.ReadReport) {
	for _, m := range c.Maps() {
		fmt.Fprintf(w, "%s: read %d nades\n", m, report.PerMap[m])
	}
	fmt.Fprintf(w, "read %d nades total", report.Total)
	if report.Duplicates > 0 {
		fmt.Fprintf(w, ", %d duplicates dropped", report.Duplicates)
	}
	fmt.Fprintln(w)
	if report.Rejections.Total() > 0 {
		fmt.Fprintf(w, "%d entries rejected:\n%s", report.Rejections.Total(), report.Rejections)
	}
}

func printConversion(w io.Writer, conv core.Conversion) {
	fmt.Fprintf(w, "[%s]\n", conv.Format)
	for _, m := range util.SortedKeys(conv.PerMap) {
		fmt.Fprintf(w, "%s: wrote %d nades\n", m, conv.PerMap[m])
	}
	fmt.Fprintf(w, "wrote %d nades total", conv.Total)
	if conv.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", conv.Skipped)
	}
	fmt.Fprintln(w)
	if conv.Rejections.Total() > 0 {
		fmt.Fprintf(w, "%d nades failed to convert:\n%s", conv.Rejections.Total(), conv.Rejections)
	}
}
