package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	watermark "github.com/yyyoichi/watermark_lf"
	"github.com/yyyoichi/watermark_lf/internal/config"
	"github.com/yyyoichi/watermark_lf/internal/imageio"
	"github.com/yyyoichi/watermark_lf/mark"
	"github.com/yyyoichi/watermark_lf/quality"
)

const usage = `usage:
  lfmark embed -in <image|url> -out <image> -text <watermark> [-config lfmark.yaml] [-env .env] [-debug]
  lfmark value -text <watermark> [-config lfmark.yaml] [-env .env]`

var errUsage = errors.New(usage)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		slog.Error("lfmark failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "embed":
		return runEmbed(ctx, args[1:], stdout, stderr)
	case "value":
		return runValue(args[1:], stdout, stderr)
	default:
		return errUsage
	}
}

type commonFlags struct {
	configPath string
	envFile    string
	text       string
	debug      bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&c.envFile, "env", ".env", "Path to an optional env file")
	fs.StringVar(&c.text, "text", "", "Watermark text")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging")
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runValue(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := flag.NewFlagSet("value", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(common.configPath, common.envFile)
	if err != nil {
		return err
	}
	m, err := mark.NewEncoder(mark.Config{Strength: cfg.StrengthValue()}).Encode(common.text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%g\n", m.Value())
	return err
}

func runEmbed(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		common  commonFlags
		in, out string
	)
	fs := flag.NewFlagSet("embed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common.register(fs)
	fs.StringVar(&in, "in", "", "Source image file or http(s) URL (png, jpeg, gif, bmp, tiff, webp)")
	fs.StringVar(&out, "out", "", "Destination image (png, jpeg, bmp, tiff)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if in == "" || out == "" {
		return errUsage
	}

	logger := newLogger(stderr, common.debug)

	cfg, err := config.Load(common.configPath, common.envFile)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		"config", common.configPath,
		"strength", cfg.StrengthValue(),
		"workers", cfg.Workers,
	)

	opts := []watermark.Option{watermark.WithStrength(cfg.StrengthValue())}
	if cfg.Workers > 0 {
		opts = append(opts, watermark.WithWorkers(cfg.Workers))
	}
	w, err := watermark.New(opts...)
	if err != nil {
		return err
	}

	src, format, err := imageio.NewFetcher(cfg.CacheDir).Open(in)
	if err != nil {
		return err
	}
	logger.Debug("image decoded", "path", in, "format", format,
		"width", src.Bounds().Dx(), "height", src.Bounds().Dy())

	start := time.Now()
	marked, err := w.EmbedText(ctx, src, common.text)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := imageio.WriteFile(out, marked, cfg.Format, cfg.Quality); err != nil {
		return err
	}

	psnr, err := quality.PSNR(src, marked)
	if err != nil {
		return err
	}
	logger.Info("watermark embedded",
		"in", in,
		"out", out,
		"elapsed", elapsed,
		"psnr_db", psnr,
	)
	_, err = fmt.Fprintf(stdout, "PSNR: %.2f dB\n", psnr)
	return err
}
