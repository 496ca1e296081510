package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/config"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/dumps"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/i18n"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
)

const (
	EuroVocPrefix       string = "http://eurovoc.europa.eu/"
	ISO6391Prefix       string = "http://id.loc.gov/vocabulary/iso639-1/"
	PublisherTypePrefix string = "http://purl.org/adms/publishertype/"
	ContinuousFrequency string = "http://purl.org/cld/freq/continuous"
	YearMonthDayISO8601 string = "2006-01-02"
)

// Builder assembles catalog records from a validated configuration, merged
// translations and a dump inventory. It never modifies its inputs.
type Builder struct {
	cfg       *config.Config
	bundle    i18n.Bundle
	inventory *dumps.Inventory
	ids       domain.Identifiers
	now       func() time.Time
}

type Option func(*Builder)

// WithClock overrides the clock used for the catalog modification date
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

func WithIdentifiers(ids domain.Identifiers) Option {
	return func(b *Builder) {
		b.ids = ids
	}
}

func NewBuilder(cfg *config.Config, bundle i18n.Bundle, inventory *dumps.Inventory, options ...Option) *Builder {
	b := &Builder{
		cfg:       cfg,
		bundle:    bundle,
		inventory: inventory,
		ids:       domain.DefaultIdentifiers(),
		now:       time.Now,
	}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// Build assembles the complete document: publisher, contact point, the live
// dataset with its distributions, one dataset per dump date and finally the
// catalog that ties them together.
func (b *Builder) Build(ctx context.Context) domain.Document {
	log := logging.GetFromContext(ctx)

	doc := domain.Document{
		Publisher:    b.BuildPublisher(),
		ContactPoint: b.BuildContactPoint(),
	}

	liveIDs := []string{}
	for _, kind := range b.cfg.LiveKinds() {
		distributions := b.BuildDistributions(ctx, kind, "")
		doc.LiveDistributions = append(doc.LiveDistributions, distributions...)
		liveIDs = append(liveIDs, idsOf(distributions)...)
	}

	doc.LiveDataset = b.BuildDataset("", liveIDs)
	datasetIDs := []string{doc.LiveDataset.About}

	if b.cfg.DumpsEnabled {
		for _, date := range b.inventory.Dates() {
			distributions := b.BuildDistributions(ctx, domain.KindDump, date)
			dataset := b.BuildDataset(date, idsOf(distributions))

			doc.Dumps = append(doc.Dumps, domain.Dump{
				Date:          date,
				Distributions: distributions,
				Dataset:       dataset,
			})
			datasetIDs = append(datasetIDs, dataset.About)
		}
	}

	doc.Catalog = b.BuildCatalog(datasetIDs)

	log.Info().Msgf("assembled catalog with %d datasets and %d distributions", doc.DatasetCount(), doc.DistributionCount())

	return doc
}

func (b *Builder) BuildPublisher() domain.Agent {
	p := b.cfg.Publisher
	return domain.Agent{
		NodeID:        b.ids.Publisher,
		Name:          p.Name,
		PublisherType: PublisherTypePrefix + p.PublisherType,
		Homepage:      p.Homepage,
		Email:         mailto(p.Email),
	}
}

func (b *Builder) BuildContactPoint() domain.ContactPoint {
	cp := b.cfg.ContactPoint
	return domain.ContactPoint{
		NodeID: b.ids.ContactPoint,
		Type:   cp.VCardType,
		Name:   cp.Name,
		Email:  mailto(cp.Email),
	}
}

func (b *Builder) subject(fragment string) string {
	return b.cfg.URI + "#" + fragment
}

func mailto(email string) string {
	return "mailto:" + email
}

func idsOf(distributions []domain.Distribution) []string {
	ids := make([]string, 0, len(distributions))
	for _, d := range distributions {
		ids = append(ids, d.About)
	}
	return ids
}

func replaceTokens(msg string, values ...string) string {
	pairs := make([]string, 0, 2*len(values))
	for i, v := range values {
		pairs = append(pairs, "$"+string(rune('1'+i)), v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
