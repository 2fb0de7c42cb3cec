package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/arnodel/jsonsplit/decompress"
	"github.com/arnodel/jsonsplit/extract"
	"github.com/arnodel/jsonsplit/filter"
	"github.com/arnodel/jsonsplit/internal/config"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom of run).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "jsonsplit: ", 0)

	cfg, err := config.Parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Print(err)
		return 2
	}
	if cfg.Debug {
		logger.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	input, err := openInput(cfg, stdin)
	if err != nil {
		logger.Print(err)
		return 1
	}
	defer input.Close()

	output, closeOutput, err := openOutput(cfg, stdout)
	if err != nil {
		logger.Print(err)
		return 1
	}

	color := cfg.Color == config.ColorAlways || cfg.Color == config.ColorAuto && isTerminal(output)
	if f, ok := output.(*os.File); ok && color {
		output = colorable.NewColorable(f)
	}
	out := bufio.NewWriter(output)

	opts := []extract.Option{
		extract.WithTargetKey(cfg.TargetKey),
		extract.WithColor(color),
	}
	if cfg.Where != "" {
		f, err := filter.Parse(cfg.Where)
		if err != nil {
			logger.Print(err)
			return 2
		}
		opts = append(opts, extract.WithFilter(f))
	}
	if cfg.Debug {
		opts = append(opts, extract.WithObserver(logObserver(logger)))
	}

	start := time.Now()
	stats, err := extract.Extract(ctx, input, out, opts...)
	if err == nil {
		err = out.Flush()
	}
	if closeErr := closeOutput(); err == nil {
		err = closeErr
	}
	if cfg.Stats {
		logger.Printf("%d records written, %d filtered out, %d bytes, digest %016x in %s",
			stats.Records, stats.Skipped, stats.Bytes, stats.Digest, time.Since(start).Round(time.Millisecond))
	}
	if err != nil {
		// Output closed early, e.g. piped to head
		if errors.Is(err, syscall.EPIPE) {
			return 0
		}
		logger.Print(err)
		return 1
	}
	return 0
}

func openInput(cfg *config.Config, stdin io.Reader) (io.ReadCloser, error) {
	if cfg.Input == config.Stdio {
		return decompress.Open(stdin, cfg.Compression)
	}
	return decompress.OpenFile(cfg.Input, cfg.Compression)
}

func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.Output == config.Stdio {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func logObserver(logger *log.Logger) extract.Observer {
	return extract.ObserverFuncs{
		OnCollectionStart: func(key string) {
			logger.Printf("found collection %q", key)
		},
		OnRecordStart: func(key string) {
			logger.Printf("record %q", key)
		},
		OnRecordEnd: func(key string, size int) {
			if size == 0 {
				logger.Printf("record %q filtered out", key)
			} else {
				logger.Printf("record %q written (%d bytes)", key, size)
			}
		},
		OnCollectionEnd: func(records int) {
			logger.Printf("end of collection after %d records", records)
		},
	}
}
