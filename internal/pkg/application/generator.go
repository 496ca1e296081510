package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/catalog"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/config"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/dumps"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/i18n"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
	"github.com/diwise/wikibase-dcatap/internal/pkg/presentation/rdf"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("wikibase-dcatap/generator")

const (
	DefaultConfigPath string = "config.json"
	DefaultI18nDir    string = "i18n"
	OutputFileName    string = "dcatap.rdf"
)

type Settings struct {
	ConfigPath string
	I18nDir    string
	// DumpDir and OutputDir override the dump directory from the config
	// and the output directory (which defaults to the dump directory)
	DumpDir   string
	OutputDir string
	Now       func() time.Time
}

type Generator interface {
	// Generate writes the catalog description and returns the path to it
	Generate(ctx context.Context) (string, error)
}

func NewGenerator(settings Settings) Generator {
	if settings.ConfigPath == "" {
		settings.ConfigPath = DefaultConfigPath
	}
	if settings.I18nDir == "" {
		settings.I18nDir = DefaultI18nDir
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}

	return &generator{settings: settings}
}

type generator struct {
	settings Settings
}

func (g *generator) Generate(ctx context.Context) (string, error) {
	var err error
	ctx, span := tracer.Start(ctx, "generate-dcatap")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	cfg, err := loadConfig(g.settings.ConfigPath)
	if err != nil {
		return "", err
	}

	dumpDir := cfg.Directory
	if g.settings.DumpDir != "" {
		dumpDir = g.settings.DumpDir
	}

	outputDir := dumpDir
	if g.settings.OutputDir != "" {
		outputDir = g.settings.OutputDir
	}

	var bundle i18n.Bundle
	inventory := dumps.NewInventory()

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		var err error
		bundle, err = loadTranslations(gctx, g.settings.I18nDir, cfg.CatalogI18n)
		return err
	})

	if cfg.DumpsEnabled {
		grp.Go(func() error {
			var err error
			inventory, err = dumps.Scan(gctx, dumpDir, cfg.Info(domain.KindDump))
			return err
		})
	}

	if err = grp.Wait(); err != nil {
		return "", err
	}

	builder := catalog.NewBuilder(cfg, bundle, inventory, catalog.WithClock(g.settings.Now))
	document := builder.Build(ctx)

	output, err := rdf.Marshal(document)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, OutputFileName)
	if err = writeFile(path, output); err != nil {
		return "", err
	}

	log.Info().Str("path", path).Msgf("wrote %d bytes of dcat-ap", len(output))

	return path, nil
}

func loadConfig(path string) (*config.Config, error) {
	doc, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(doc); err != nil {
		return nil, err
	}

	return config.Decode(doc)
}

func loadTranslations(ctx context.Context, dir, catalogI18n string) (i18n.Bundle, error) {
	local, err := i18n.LoadDir(ctx, dir)
	if err != nil {
		return i18n.Bundle{}, err
	}

	remote, err := i18n.Fetch(ctx, catalogI18n)
	if err != nil {
		return i18n.Bundle{}, err
	}

	return i18n.Merge(local, remote)
}

// writeFile replaces path with data via a temporary file in the same
// directory, so that readers never observe a partially written catalog
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	fi, err := os.Stat(dir)
	if err != nil {
		return &domain.IOError{Op: "access output directory", Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return &domain.IOError{Op: "access output directory", Path: dir, Err: fmt.Errorf("not a directory")}
	}

	tmp, err := os.CreateTemp(dir, "."+OutputFileName+"-*")
	if err != nil {
		return &domain.IOError{Op: "create output file in", Path: dir, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &domain.IOError{Op: "write", Path: tmp.Name(), Err: err}
	}

	if err := tmp.Close(); err != nil {
		return &domain.IOError{Op: "close", Path: tmp.Name(), Err: err}
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return &domain.IOError{Op: "chmod", Path: tmp.Name(), Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return &domain.IOError{Op: "rename output file to", Path: path, Err: err}
	}

	return nil
}
