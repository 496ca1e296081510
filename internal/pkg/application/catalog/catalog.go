package catalog

import (
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/i18n"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
)

func (b *Builder) BuildCatalog(datasetIDs []string) domain.Catalog {
	c := domain.Catalog{
		About:         b.subject(b.ids.Catalog),
		License:       b.cfg.CatalogLicense,
		ThemeTaxonomy: EuroVocPrefix,
		Homepage:      b.cfg.CatalogHomepage,
		Modified:      b.now().UTC().Format(YearMonthDayISO8601),
		Issued:        b.cfg.CatalogIssued,
		Publisher:     b.ids.Publisher,
		Datasets:      append([]string{}, datasetIDs...),
	}

	for _, l := range b.bundle.Languages() {
		lang := domain.CatalogLanguage{
			URI:       ISO6391Prefix + l.Code,
			Localized: domain.Localized{Lang: l.Code},
		}

		if title, ok := l.Message(i18n.CatalogTitleKey); ok {
			lang.Title = &title
		}
		if description, ok := l.Message(i18n.CatalogDescriptionKey); ok {
			lang.Description = &description
		}

		c.Languages = append(c.Languages, lang)
	}

	return c
}
