package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-certgen/components/certificates"
	"github.com/goliatone/go-certgen/pkg/model"
	"github.com/goliatone/go-certgen/pkg/orchestrator"
	"github.com/goliatone/go-certgen/pkg/placeholder"
	"github.com/goliatone/go-certgen/pkg/preset"
	"github.com/goliatone/go-certgen/pkg/prompt"
	"github.com/goliatone/go-certgen/pkg/render"
	"github.com/goliatone/go-certgen/pkg/renderers/certificate"
)

type flags struct {
	input            string
	preset           string
	output           string
	interactive      bool
	listPlaceholders bool
	listPresets      bool
	serve            string
}

func main() {
	var f flags
	flag.StringVar(&f.input, "input", "", "certificate description (JSON or YAML, - for stdin)")
	flag.StringVar(&f.preset, "preset", "", "preset providing default custom fields")
	flag.StringVar(&f.output, "output", "", "output file (stdout if empty)")
	flag.BoolVar(&f.interactive, "interactive", false, "prompt for custom fields before rendering")
	flag.BoolVar(&f.listPlaceholders, "list-placeholders", false, "print supported placeholders and exit")
	flag.BoolVar(&f.listPresets, "list-presets", false, "print available presets and exit")
	flag.StringVar(&f.serve, "serve", "", "serve the certificate HTTP endpoint on this address")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f, cfg, logger, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			logger.Warn("aborted")
			os.Exit(130)
		}
		logger.Error("certgen failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags, cfg config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	if f.listPlaceholders {
		for _, name := range placeholder.Names() {
			fmt.Fprintf(stdout, "{%s}\n", name)
		}
		return nil
	}

	gen, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	if f.listPresets {
		for _, name := range gen.Presets() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	if f.serve != "" {
		return serve(ctx, f.serve, cfg, gen, logger)
	}

	in, err := readInput(f.input, stdin)
	if err != nil {
		return err
	}
	req := in.request(f.preset)
	if req.RenderOptions.Locale == "" {
		req.RenderOptions.Locale = strings.TrimSpace(cfg.Locale)
	}

	if f.interactive {
		req, err = interact(ctx, gen, prompt.NewSurveyDriver(), req)
		if err != nil {
			return err
		}
	}

	html, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	if f.output == "" {
		_, err := stdout.Write(html)
		return err
	}
	if err := os.WriteFile(f.output, html, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("certificate written", slog.String("path", f.output), slog.Int("bytes", len(html)))
	return nil
}

func newOrchestrator(cfg config, logger *slog.Logger) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithCertificateOptions(
			certificate.WithTemplatesDir(cfg.TemplatesDir),
			certificate.WithDateLayout(cfg.DateLayout),
			certificate.WithInlineStyles(cfg.InlineStyles),
		),
	}
	if dir := strings.TrimSpace(cfg.PresetsDir); dir != "" {
		options = append(options, orchestrator.WithPresetFS(os.DirFS(dir)))
	}

	if dir := strings.TrimSpace(cfg.ThemesDir); dir != "" {
		manifests, err := orchestrator.LoadThemeManifests(os.DirFS(dir))
		if err != nil {
			return nil, err
		}
		selector := orchestrator.NewManifestSelector(cfg.Theme, cfg.ThemeVariant, manifests...)
		logger.Debug("themes loaded", slog.String("dir", dir), slog.Any("themes", selector.Names()))
		options = append(options, orchestrator.WithThemeSelector(selector))
	}

	if file := strings.TrimSpace(cfg.MessagesFile); file != "" {
		catalog, err := render.LoadCatalog(os.DirFS(filepath.Dir(file)), filepath.Base(file))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTranslator(catalog))
	}
	return orchestrator.New(options...), nil
}

// interact prompts for custom fields starting from the resolved document. The
// answers are the complete field set, so presets are not layered again.
func interact(ctx context.Context, gen *orchestrator.Orchestrator, driver prompt.PromptDriver, req orchestrator.Request) (orchestrator.Request, error) {
	if strings.TrimSpace(req.Preset) == "" {
		name, err := prompt.SelectPreset(ctx, driver, gen.Presets(), preset.DefaultName)
		if err != nil {
			return req, err
		}
		req.Preset = name
	}

	doc, err := gen.Resolve(req)
	if err != nil {
		return req, err
	}

	fields, err := prompt.FillCustomFields(ctx, driver, doc.CustomFields.Map())
	if err != nil {
		return req, err
	}
	req.CustomFields = fields
	req.Document.CustomFields = model.CustomFields{}
	req.NoPreset = true
	return req, nil
}

func serve(ctx context.Context, addr string, cfg config, gen *orchestrator.Orchestrator, logger *slog.Logger) error {
	mux := http.NewServeMux()
	pattern, err := certificates.RegisterRoutes(mux, cfg.HTTPBasePath,
		certificates.WithGenerator(gen),
		certificates.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving certificates", slog.String("addr", addr), slog.String("path", pattern))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
