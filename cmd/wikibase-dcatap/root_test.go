package main

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestFlagsAreExpandedIntoSettings(t *testing.T) {
	is := is.New(t)

	cmd := newRootCommand(context.Background())
	is.NoErr(cmd.ParseFlags([]string{"--config", "/etc/dcatap/config.json", "--dump-dir", "/srv/dumps"}))

	f := &flags{}
	f.configPath, _ = cmd.Flags().GetString("config")
	f.i18nDir, _ = cmd.Flags().GetString("i18n")
	f.dumpDir, _ = cmd.Flags().GetString("dump-dir")
	f.outputDir, _ = cmd.Flags().GetString("output-dir")

	settings, err := f.settings()
	is.NoErr(err)

	is.Equal(settings.ConfigPath, "/etc/dcatap/config.json")
	is.Equal(settings.I18nDir, "i18n")
	is.Equal(settings.DumpDir, "/srv/dumps")
	is.Equal(settings.OutputDir, "")
}

func TestCommandRejectsPositionalArguments(t *testing.T) {
	is := is.New(t)

	cmd := newRootCommand(context.Background())
	cmd.SetArgs([]string{"unexpected"})

	is.True(cmd.ExecuteContext(context.Background()) != nil)
}
