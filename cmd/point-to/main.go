package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	pointto "github.com/hellenic-development/point-to"
	"github.com/hellenic-development/point-to/pkg/animator"
	"github.com/hellenic-development/point-to/pkg/memdom"
	"github.com/hellenic-development/point-to/pkg/scope"
)

const version = pointto.Version

var (
	htmlFile     string
	scenarioFile string
	sources      string
	target       string
	accent       string
	opacity      float64
	highlightMS  int
	pointerMS    int
	pointerSize  int
	debug        bool
	emitCSS      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "point-to",
		Short: "Play pointing animations over an HTML document, headlessly",
		Long:  "A tool to run source-to-target pointing animations over an HTML file in an in-memory document, printing the phase log and mutation timeline the runs produce",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&htmlFile, "file", "f", "", "HTML document to load (required unless --scenario is given)")
	rootCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "TOML scenario describing the document and pointings")
	rootCmd.Flags().StringVar(&sources, "sources", "", "CSS selector of the source element(s)")
	rootCmd.Flags().StringVarP(&target, "target", "t", "", "CSS selector of the target element")
	rootCmd.Flags().StringVarP(&accent, "color", "c", "", "Accent color in any CSS notation")
	rootCmd.Flags().Float64Var(&opacity, "opacity", 0, "Pointer orb opacity, 0 < o <= 1")
	rootCmd.Flags().IntVar(&highlightMS, "highlight-ms", 0, "Highlight flash duration in milliseconds (-1 disables the flashes)")
	rootCmd.Flags().IntVar(&pointerMS, "pointer-ms", 0, "Orb travel duration in milliseconds (-1 skips the travel wait)")
	rootCmd.Flags().IntVar(&pointerSize, "pointer-size", 0, "Orb diameter in pixels")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Retain injected style nodes and log phase transitions")
	rootCmd.Flags().BoolVar(&emitCSS, "emit-css", false, "Print each run's synthesized stylesheet")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("point-to version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// scenario describes a document and the pointings to play over it.
type scenario struct {
	File      string     `toml:"file"` // HTML document path, relative to the scenario
	HTML      string     `toml:"html"` // inline document, used when File is empty
	Pointings []pointing `toml:"pointing"`
}

// pointing is one [[pointing]] block. Durations in milliseconds; -1
// disables the phase, 0 keeps the default.
type pointing struct {
	Sources        string  `toml:"sources"`
	Target         string  `toml:"target"`
	Color          string  `toml:"color"`
	Opacity        float64 `toml:"opacity"`
	HighlightClass string  `toml:"highlight_class"`
	HighlightMS    int     `toml:"highlight_ms"`
	HighlightColor string  `toml:"highlight_color"`
	PointerClass   string  `toml:"pointer_class"`
	PointerMS      int     `toml:"pointer_ms"`
	PointerColor   string  `toml:"pointer_color"`
	PointerSize    int     `toml:"pointer_size"`
	Debug          bool    `toml:"debug"`
}

// options converts the block into library options.
func (p pointing) options() pointto.Options {
	return pointto.Options{
		Target:                     p.Target,
		Color:                      p.Color,
		Opacity:                    p.Opacity,
		HighlightAnimationClass:    p.HighlightClass,
		HighlightAnimationDuration: msOption(p.HighlightMS),
		HighlightAnimationColor:    p.HighlightColor,
		PointerClass:               p.PointerClass,
		PointerTransitionDuration:  msOption(p.PointerMS),
		PointerColor:               p.PointerColor,
		PointerSize:                p.PointerSize,
		Debug:                      p.Debug,
	}
}

func msOption(ms int) time.Duration {
	if ms < 0 {
		return pointto.Disable
	}
	return time.Duration(ms) * time.Millisecond
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎯 point-to")
	cyan.Println("===========")

	var (
		doc   *memdom.Document
		plays []pointing
		err   error
	)

	if scenarioFile != "" {
		var sc *scenario
		sc, err = loadScenario(scenarioFile)
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		doc, err = loadDocument(sc)
		plays = sc.Pointings
	} else {
		if htmlFile == "" || sources == "" || target == "" {
			red.Println("Error: --file, --sources and --target are required without --scenario")
			os.Exit(1)
		}
		doc, err = loadFile(htmlFile)
		plays = []pointing{{
			Sources:     sources,
			Target:      target,
			Color:       accent,
			Opacity:     opacity,
			HighlightMS: highlightMS,
			PointerMS:   pointerMS,
			PointerSize: pointerSize,
		}}
	}
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger := &cliLogger{}
	var runs []*animator.Sequence

	for _, p := range plays {
		cyan.Printf("\n▶ %s → %s\n", p.Sources, p.Target)

		opts := p.options()
		opts.Debug = opts.Debug || debug || emitCSS
		opts.Logger = logger
		opts.OnPhase = func(runID string, phase animator.Phase) {
			fmt.Printf("  %6dms  run %s  %s\n", doc.Now().Milliseconds(), shortID(runID), phase)
		}

		result := pointto.Point(doc, p.Sources, opts)
		runs = append(runs, result.Sequences...)
	}

	// Play everything out on the virtual clock.
	doc.RunUntilIdle()

	cyan.Println("\n🎨 Runs:")
	out := termenv.NewOutput(os.Stdout)
	for _, seq := range runs {
		cfg := seq.Config()
		swatch := out.String("●").Foreground(out.Color(cfg.PointerColor.Hex()))
		state := "done"
		if !seq.Done() {
			state = seq.Phase().String()
		}
		fmt.Printf("  %s run %s  %s → %s  [%s]\n",
			swatch, shortID(seq.ID()), scope.Path(cfg.Source), scope.Path(cfg.Target), state)
	}

	cyan.Println("\n📜 Timeline:")
	for _, e := range doc.Journal() {
		fmt.Printf("  %6dms  %-12s %-22s %s\n", e.At.Milliseconds(), e.Kind, e.Target, e.Detail)
	}

	if emitCSS {
		cyan.Println("\n🧵 Stylesheets:")
		for _, seq := range runs {
			if node := seq.StyleNode(); node != nil {
				fmt.Printf("\n/* run %s */\n%s", shortID(seq.ID()), node.Text())
			}
		}
	}

	stalled := 0
	for _, seq := range runs {
		if !seq.Done() {
			stalled++
		}
	}
	if stalled > 0 {
		logger.Warnf("%d of %d run(s) did not complete", stalled, len(runs))
	}
	green.Printf("\n✨ %d run(s) played in %dms\n\n", len(runs)-stalled, doc.Now().Milliseconds())
}

// loadScenario decodes and validates a scenario file.
func loadScenario(path string) (*scenario, error) {
	var sc scenario
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if sc.File == "" && sc.HTML == "" {
		return nil, fmt.Errorf("scenario %s names neither file nor html", path)
	}
	if len(sc.Pointings) == 0 {
		return nil, fmt.Errorf("scenario %s has no [[pointing]] blocks", path)
	}
	// Document paths resolve relative to the scenario file.
	if sc.File != "" && !filepath.IsAbs(sc.File) {
		sc.File = filepath.Join(filepath.Dir(path), sc.File)
	}
	return &sc, nil
}

func loadDocument(sc *scenario) (*memdom.Document, error) {
	if sc.HTML != "" {
		doc, err := memdom.Load(strings.NewReader(sc.HTML))
		if err != nil {
			return nil, fmt.Errorf("load inline html: %w", err)
		}
		return doc, nil
	}
	return loadFile(sc.File)
}

func loadFile(path string) (*memdom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := memdom.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// cliLogger implements pointto.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
