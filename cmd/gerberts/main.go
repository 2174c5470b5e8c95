// Command gerberts renders, reformats, and reports on Gerber RS-274X/X2
// files: parse flags, load a viper-backed configuration, log through
// glog, then dispatch to one of a small set of top-level operations.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/tscircuit/gerberts/config"
	"github.com/tscircuit/gerberts/document"
	"github.com/tscircuit/gerberts/render"
)

func main() {
	defer glog.Flush()

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: gerberts <render|fmt|info> -i <input> [-o <output>]")
		flag.PrintDefaults()
	}

	var inFile, outFile, configPath string
	var scale, padding float64
	var stroke, fill, bg string
	flag.StringVar(&inFile, "i", "", "input Gerber file")
	flag.StringVar(&outFile, "o", "", "output file (defaults to stdout)")
	flag.StringVar(&configPath, "config", "", "path to a gerberts.toml config file")
	flag.Float64Var(&scale, "scale", 0, "render: SVG scale factor (overrides config)")
	flag.Float64Var(&padding, "padding", -1, "render: bounding-box padding in document units (overrides config)")
	flag.StringVar(&stroke, "stroke", "", "render: stroke color (overrides config)")
	flag.StringVar(&fill, "fill", "", "render: fill color (overrides config)")
	flag.StringVar(&bg, "bg", "", "render: background color (overrides config)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}
	// Flags may also follow the subcommand, as the usage line shows.
	if err := flag.CommandLine.Parse(args[1:]); err != nil || flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.New()
	if configPath != "" {
		cfg.SetConfigFile(configPath)
		if err := cfg.ReadInConfig(); err != nil {
			glog.Warningf("gerberts: reading config %s: %v; using defaults", configPath, err)
		}
	}
	if scale != 0 {
		cfg.Set(config.KeyRenderScale, scale)
	}
	if padding >= 0 {
		cfg.Set(config.KeyRenderPadding, padding)
	}
	if stroke != "" {
		cfg.Set(config.KeyRenderStrokeColor, stroke)
	}
	if fill != "" {
		cfg.Set(config.KeyRenderFillColor, fill)
	}
	if bg != "" {
		cfg.Set(config.KeyRenderBackgroundColor, bg)
	}
	if cfg.GetBool(config.KeyCLIVerbose) {
		glog.Info("verbose diagnostics enabled")
		config.DiagnosticAllCfgPrint(cfg)
	}

	if inFile == "" {
		fmt.Fprintln(os.Stderr, "gerberts: -i is required")
		os.Exit(2)
	}
	src, err := os.ReadFile(inFile)
	if err != nil {
		glog.Errorf("gerberts: reading %s: %v", inFile, err)
		os.Exit(1)
	}
	doc := document.Parse(string(src))

	var out string
	switch args[0] {
	case "render":
		out, err = renderCommand(doc, cfg)
	case "fmt":
		doc.EnsureEndOfFile()
		out = doc.GetString()
	case "info":
		out = infoCommand(doc)
	default:
		fmt.Fprintf(os.Stderr, "gerberts: unknown command %q\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		glog.Errorf("gerberts: %s: %v", args[0], err)
		os.Exit(1)
	}

	if outFile == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(outFile, []byte(out), 0o644); err != nil {
		glog.Errorf("gerberts: writing %s: %v", outFile, err)
		os.Exit(1)
	}
}

func renderCommand(doc *document.Document, cfg *viper.Viper) (string, error) {
	opts := render.Options{
		Scale:           cfg.GetFloat64(config.KeyRenderScale),
		StrokeColor:     cfg.GetString(config.KeyRenderStrokeColor),
		FillColor:       cfg.GetString(config.KeyRenderFillColor),
		BackgroundColor: cfg.GetString(config.KeyRenderBackgroundColor),
		Padding:         cfg.GetFloat64(config.KeyRenderPadding),
		Logf:            glog.Warningf,
	}
	return render.Render(doc, opts)
}

func infoCommand(doc *document.Document) string {
	var b []byte
	fs, hasFS := doc.FormatSpecification()
	um, hasUnit := doc.UnitMode()
	b = append(b, fmt.Sprintf("apertures: %d\n", len(doc.ApertureDefinitions()))...)
	b = append(b, fmt.Sprintf("operations: %d\n", len(doc.Operations()))...)
	b = append(b, fmt.Sprintf("attributes: %d\n", len(doc.FileAttributes()))...)
	if hasFS {
		b = append(b, fmt.Sprintf("format: X%d.%d Y%d.%d\n", fs.XInt, fs.XDec, fs.YInt, fs.YDec)...)
	}
	if hasUnit {
		b = append(b, fmt.Sprintf("unit: %s\n", um.Unit)...)
	}
	return string(b)
}
