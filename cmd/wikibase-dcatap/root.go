package main

import (
	"context"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath string
	i18nDir    string
	dumpDir    string
	outputDir  string
}

func newRootCommand(ctx context.Context) *cobra.Command {
	log := logging.GetFromContext(ctx)
	f := &flags{}

	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Generate a DCAT-AP description of a Wikibase and its entity dumps",
		Long: `
Scans the dump directory for dated entity dumps and writes a DCAT-AP compliant
RDF/XML catalog (dcatap.rdf) describing the live data, the API and every dump.
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := f.settings()
			if err != nil {
				return err
			}

			path, err := application.NewGenerator(settings).Generate(cmd.Context())
			if err != nil {
				return err
			}

			log.Info().Msgf("dcat-ap catalog written to %s", path)
			return nil
		},
	}

	defaultConfig := env.GetVariableOrDefault(log, "DCATAP_CONFIG", application.DefaultConfigPath)

	cmd.Flags().StringVar(&f.configPath, "config", defaultConfig, "path to the configuration file (respects DCATAP_CONFIG)")
	cmd.Flags().StringVar(&f.i18nDir, "i18n", application.DefaultI18nDir, "directory holding the <lang>.json translation files")
	cmd.Flags().StringVar(&f.dumpDir, "dump-dir", "", "dump directory to scan (default: directory from the config)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "directory to write "+application.OutputFileName+" to (default: the dump directory)")

	return cmd
}

func (f *flags) settings() (application.Settings, error) {
	settings := application.Settings{}

	paths := []struct {
		flag string
		in   string
		out  *string
	}{
		{"config", f.configPath, &settings.ConfigPath},
		{"i18n", f.i18nDir, &settings.I18nDir},
		{"dump-dir", f.dumpDir, &settings.DumpDir},
		{"output-dir", f.outputDir, &settings.OutputDir},
	}

	for _, p := range paths {
		expanded, err := homedir.Expand(p.in)
		if err != nil {
			return settings, fmt.Errorf("unable to expand --%s: %w", p.flag, err)
		}
		*p.out = expanded
	}

	return settings, nil
}

// Execute builds the root command and runs it with the given context
func Execute(ctx context.Context) error {
	return newRootCommand(ctx).ExecuteContext(ctx)
}
