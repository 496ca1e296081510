package catalog

import (
	"context"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/config"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/dumps"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
)

// live distributions are never compressed
var uncompressed = []config.Compression{{}}

// BuildDistributions returns one distribution per configured compression and
// media type for the given kind. For dumps, combinations without a matching
// file in the inventory for dumpDate are skipped.
func (b *Builder) BuildDistributions(ctx context.Context, kind domain.Kind, dumpDate string) []domain.Distribution {
	log := logging.GetFromContext(ctx)

	info := b.cfg.Info(kind)
	if info == nil {
		return []domain.Distribution{}
	}

	compressions := uncompressed
	if kind == domain.KindDump {
		compressions = info.Compressions
	}

	descriptionKey := "distribution-" + kind.String() + "-description"
	distributions := []domain.Distribution{}

	for _, c := range compressions {
		for _, mt := range info.MediaTypes {
			key := dumps.Key(mt.Key, c.Name)

			d := domain.Distribution{
				About:     b.subject(b.ids.DistributionPrefix(kind) + dumpDate + key),
				Kind:      kind,
				License:   info.License,
				Format:    mt.ContentType,
				MediaType: mt.ContentType,
			}

			if kind == domain.KindDump {
				file, ok := b.inventory.Lookup(dumpDate, key)
				if !ok {
					log.Debug().Str("dumpDate", dumpDate).Str("key", key).Msg("no dump file found, skipping distribution")
					continue
				}

				url := replaceTokens(info.AccessURL, file.Filename)
				d.AccessURL = url
				d.DownloadURL = url
				d.Issued = file.Timestamp
				d.ByteSize = file.ByteSize
				d.CompressFormat = c.ContentType
			} else {
				d.AccessURL = info.AccessURL
			}

			for _, l := range b.bundle.Languages() {
				msg, ok := l.Message(descriptionKey)
				if !ok {
					continue
				}
				if kind == domain.KindDump {
					msg = replaceTokens(msg, mt.Name, c.Name)
				}
				d.Descriptions = append(d.Descriptions, domain.LocalizedText{Lang: l.Code, Text: msg})
			}

			distributions = append(distributions, d)
		}
	}

	return distributions
}
