// Package batch reconciles phone numbers read line by line.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hightemp/telin/internal/catalog"
	"github.com/hightemp/telin/internal/config"
	"github.com/hightemp/telin/internal/eventloop"
	"github.com/hightemp/telin/internal/logger"
	"github.com/hightemp/telin/internal/output"
	"github.com/hightemp/telin/internal/phonelib"
	"github.com/hightemp/telin/internal/telinput"
)

// Processor feeds input lines through input controls.
//
// Each line is "<number>" or "<iso2>\t<number>". Every line gets a fresh
// control, so a country chosen on one line does not leak into the next.
type Processor struct {
	catalog     *catalog.Catalog
	opts        config.Options
	lib         phonelib.Library
	log         *logger.Logger
	country     string
	concurrency int
}

// NewProcessor creates a new batch processor.
func NewProcessor(cat *catalog.Catalog, opts config.Options, lib phonelib.Library, log *logger.Logger) *Processor {
	if lib == nil {
		lib = phonelib.New()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{
		catalog:     cat,
		opts:        opts,
		lib:         lib,
		log:         log,
		concurrency: config.DefaultConcurrency,
	}
}

// SetConcurrency sets the worker count for ProcessInputConcurrent.
func (p *Processor) SetConcurrency(n int) {
	p.concurrency = config.ClampConcurrency(n)
}

// SetCountry sets the country selected for lines that do not name one.
// Empty keeps the control's initial selection.
func (p *Processor) SetCountry(code string) {
	p.country = code
}

// ProcessInput reads numbers from input and writes results to output.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)
	var results []*output.Result

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result := p.ProcessLine(line)
		if jsonOutput {
			// Collect all results for JSON array output
			results = append(results, result)
			continue
		}
		// Stream output line by line
		fmt.Fprintln(w, result.FormatText())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(w, results)
	}
	return nil
}

// ProcessInputConcurrent processes numbers concurrently, preserving input order.
func (p *Processor) ProcessInputConcurrent(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)
	var lines []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	results := make([]*output.Result, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.ProcessLine(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(w, results)
	}
	for _, result := range results {
		fmt.Fprintln(w, result.FormatText())
	}
	return nil
}

// ProcessLine reconciles one input line the way a host form would: the
// country is selected, the value is written, and the deferred change is
// collected after the turn ends.
func (p *Processor) ProcessLine(line string) *output.Result {
	code, number := splitLine(line)
	if code == "" {
		code = p.country
	}

	loop := eventloop.New()
	defer loop.Close()

	control := telinput.New(p.catalog, loop, p.opts,
		telinput.WithLibrary(p.lib),
		telinput.WithLogger(p.log),
	)
	var last *telinput.ChangeEvent
	control.Register(telinput.SinkFuncs{
		Change: func(ev telinput.ChangeEvent) { last = &ev },
	})
	control.Init()
	defer control.Destroy()

	result := &output.Result{}
	result.Number = number

	if code != "" {
		if err := control.SelectCountry(code); err != nil {
			result.Error = err.Error()
			return result
		}
	}

	control.WriteValue(number)
	loop.RunPending()

	if last == nil {
		ev := control.Value()
		last = &ev
	}
	result.ChangeEvent = *last
	result.Valid = control.Valid()
	if country := control.Selected(); country != nil {
		result.CountryName = country.Name
	}
	return result
}

func splitLine(line string) (code, number string) {
	if before, after, ok := strings.Cut(line, "\t"); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return "", line
}

func writeJSON(w io.Writer, results []*output.Result) error {
	batch := &output.BatchResult{Results: results}
	jsonStr, err := batch.FormatJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, jsonStr)
	return err
}
