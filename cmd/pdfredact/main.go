// pdfredact is a command-line tool for blacking out rectangular regions of a PDF.
//
// Every page is rasterized at the viewer width, the rectangles listed in a marks
// file are burned into the page pixels, and a new PDF is assembled purely from
// those images. No text or vector content of the source survives in the output.
//
// Usage:
//
//	pdfredact --marks marks.yml [options] input.pdf
//
// Required flags:
//
//	--marks string    YAML file listing the rectangles to black out
//
// Options:
//
//	--config string   YAML file overriding viewer width, JPEG quality, page size and metadata
//	--output string   Output PDF path (default: <input>_REDACTED.pdf next to the input)
//	--report string   Write a JSON report of the applied redactions
//	--overwrite       Overwrite the output PDF if it already exists
//	--verbose         Enable debug logging
//
// Marks file:
//
//	viewer_width: 760
//	marks:
//	  - page: 1
//	    from: [100, 100]
//	    to: [200, 150]
//
// Coordinates are pixels on a page rendered viewer_width pixels wide, origin
// top-left.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/gardar/pdfredact/pkg/flatten"
	"github.com/gardar/pdfredact/pkg/mupdf"
	"github.com/gardar/pdfredact/pkg/raster"
	"github.com/gardar/pdfredact/pkg/redact"
)

type cli struct {
	Marks     string `required:"" type:"path" help:"YAML file listing the rectangles to black out"`
	Config    string `type:"path" help:"YAML config file"`
	Output    string `short:"o" type:"path" help:"Output PDF path"`
	Report    string `type:"path" help:"Write a JSON report of the applied redactions"`
	Overwrite bool   `help:"Overwrite the output PDF if it already exists"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`

	Input string `arg:"" name:"input" type:"path" help:"Path to input PDF"`
}

func main() {
	var args cli
	kong.Parse(&args,
		kong.Name("pdfredact"),
		kong.Description("Black out regions of a PDF and flatten it to images."),
	)

	// Keep pdfcpu from creating a config directory.
	model.ConfigPath = "disable"

	log := logrus.New()
	if args.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(context.Background(), args, mupdf.NewDecoder(), log); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args cli, decoder raster.Decoder, log logrus.FieldLogger) error {
	outputPath := args.Output
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(args.Input), flatten.OutputName(filepath.Base(args.Input)))
	}
	if err := checkOutput(args.Input, outputPath, args.Overwrite); err != nil {
		return err
	}

	config := redact.DefaultConfig()
	config.Logger = log
	if args.Config != "" {
		var err error
		if config, err = loadConfig(args.Config, config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	marks, err := loadMarks(args.Marks)
	if err != nil {
		return fmt.Errorf("failed to load marks: %w", err)
	}
	if marks.ViewerWidth > 0 {
		config.ViewerWidth = marks.ViewerWidth
	}

	info, err := os.Stat(args.Input)
	if err != nil {
		return fmt.Errorf("failed to read input PDF: %w", err)
	}
	if err := redact.CheckSize(info.Size()); err != nil {
		return err
	}
	inputData, err := os.ReadFile(args.Input)
	if err != nil {
		return fmt.Errorf("failed to read input PDF: %w", err)
	}

	session := redact.NewSession(decoder, config)
	defer session.Close()

	if err := session.Load(ctx, filepath.Base(args.Input), inputData); err != nil {
		return err
	}
	fmt.Printf("Loaded %s: %d pages at %d px\n", args.Input, session.PageCount(), config.ViewerWidth)

	committed, err := replay(session, marks.Marks)
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d of %d marks\n", committed, len(marks.Marks))

	result, err := session.Export(ctx)
	if err != nil {
		return err
	}

	if args.Report != "" {
		rep, err := buildReport(session, args.Input, outputPath, config.ViewerWidth)
		if err != nil {
			return err
		}
		data, err := rep.marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(args.Report, data, 0666); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	// Write final PDF to disk
	if err := os.WriteFile(outputPath, result.Data, 0666); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}
	fmt.Println("✅ Redacted PDF created:", outputPath)
	return nil
}

var errSameFile = errors.New("output path is the input file")

// checkOutput refuses to write over the input and, unless overwrite is set,
// over any existing file.
func checkOutput(input, output string, overwrite bool) error {
	inAbs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	if inAbs == outAbs {
		return errSameFile
	}
	if inInfo, err := os.Stat(input); err == nil {
		if outInfo, err := os.Stat(output); err == nil && os.SameFile(inInfo, outInfo) {
			return errSameFile
		}
	}

	if _, err := os.Stat(output); err == nil && !overwrite {
		return fmt.Errorf("output file %s already exists, use --overwrite to overwrite", output)
	}
	return nil
}
