package catalog

import (
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
)

// BuildDataset returns the live dataset when dumpDate is empty and the dump
// dataset for dumpDate otherwise
func (b *Builder) BuildDataset(dumpDate string, distributionIDs []string) domain.Dataset {
	kind, prefix := "live", b.ids.LiveDataset
	if dumpDate != "" {
		kind, prefix = "dump", b.ids.DumpDatasetPrefix
	}

	ds := domain.Dataset{
		About:         b.subject(prefix + dumpDate),
		DumpDate:      dumpDate,
		ContactPoint:  b.ids.ContactPoint,
		Publisher:     b.ids.Publisher,
		Keywords:      append([]string{}, b.cfg.Keywords...),
		Themes:        make([]string, 0, len(b.cfg.Themes)),
		Distributions: append([]string{}, distributionIDs...),
	}

	if ds.IsLive() {
		ds.AccrualPeriodicity = ContinuousFrequency
	}

	for _, theme := range b.cfg.Themes {
		ds.Themes = append(ds.Themes, EuroVocPrefix+theme)
	}

	for _, l := range b.bundle.Languages() {
		text := domain.Localized{Lang: l.Code}

		if title, ok := l.Message("dataset-" + kind + "-title"); ok {
			if !ds.IsLive() {
				title = replaceTokens(title, dumpDate)
			}
			text.Title = &title
		}
		if description, ok := l.Message("dataset-" + kind + "-description"); ok {
			text.Description = &description
		}

		if text.Title != nil || text.Description != nil {
			ds.Texts = append(ds.Texts, text)
		}
	}

	return ds
}
