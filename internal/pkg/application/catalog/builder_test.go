package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/diwise/wikibase-dcatap/internal/pkg/application/config"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/dumps"
	"github.com/diwise/wikibase-dcatap/internal/pkg/application/i18n"
	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
	"github.com/matryer/is"
)

const uri = "https://dumps.example.org/dcatap.rdf"

func TestLiveOnlyConfigYieldsSingleDataset(t *testing.T) {
	is, cfg := testSetup(t, false, false)

	doc := NewBuilder(cfg, testBundle(), dumps.NewInventory()).Build(context.Background())

	is.Equal(doc.DatasetCount(), 1)
	is.Equal(len(doc.Dumps), 0)
	is.Equal(len(doc.LiveDistributions), 2) // one per ld-info media type

	is.Equal(doc.LiveDistributions[0].About, uri+"#liveDataLDjson")
	is.Equal(doc.LiveDistributions[1].About, uri+"#liveDataLDttl")
	is.Equal(doc.LiveDistributions[1].AccessURL, "https://www.wikidata.org/wiki/Special:EntityData/")
	is.Equal(doc.LiveDistributions[1].Format, "text/turtle")

	is.Equal(doc.LiveDataset.About, uri+"#liveData")
	is.Equal(doc.LiveDataset.AccrualPeriodicity, ContinuousFrequency)
	is.Equal(doc.LiveDataset.Distributions, []string{uri + "#liveDataLDjson", uri + "#liveDataLDttl"})
	is.Equal(doc.Catalog.Datasets, []string{uri + "#liveData"})
}

func TestAPIDistributionsAreAddedToTheLiveDataset(t *testing.T) {
	is, cfg := testSetup(t, true, false)

	doc := NewBuilder(cfg, testBundle(), dumps.NewInventory()).Build(context.Background())

	is.Equal(len(doc.LiveDistributions), 3)
	is.Equal(doc.LiveDistributions[2].About, uri+"#liveDataAPIjson")
	is.Equal(doc.LiveDistributions[2].AccessURL, "https://www.wikidata.org/w/api.php")
	is.Equal(doc.LiveDistributions[2].Descriptions, []domain.LocalizedText{{Lang: "en", Text: "The Wikidata API"}})
	is.Equal(len(doc.LiveDataset.Distributions), 3)
}

func TestDumpDatasetsAndDistributions(t *testing.T) {
	is, cfg := testSetup(t, false, true)

	doc := NewBuilder(cfg, testBundle(), testInventory()).Build(context.Background())

	is.Equal(len(doc.Dumps), 2)
	is.Equal(doc.DatasetCount(), 3)

	first, second := doc.Dumps[0], doc.Dumps[1]
	is.Equal(first.Dataset.About, uri+"#dumpData20150120")
	is.Equal(second.Dataset.About, uri+"#dumpData20150126")
	is.Equal(first.Dataset.AccrualPeriodicity, "")

	is.Equal(len(first.Distributions), 1)
	d := first.Distributions[0]
	is.Equal(d.About, uri+"#dumpDist20150120jsongz")
	is.Equal(d.ByteSize, int64(3969097664))
	is.Equal(d.Issued, "2015-01-21")
	is.Equal(d.AccessURL, "https://dumps.example.org/wikidatawiki/entities/20150120/wikidata-20150120-all.json.gz")
	is.Equal(d.DownloadURL, d.AccessURL)
	is.Equal(d.CompressFormat, "application/gzip")
	is.Equal(d.Descriptions, []domain.LocalizedText{{Lang: "en", Text: "A json dump compressed with gz"}})

	d = second.Distributions[0]
	is.Equal(d.ByteSize, int64(3997877455))
	is.Equal(d.Issued, "2015-01-26")

	is.Equal(first.Dataset.Distributions, []string{uri + "#dumpDist20150120jsongz"})
	is.Equal(*first.Dataset.Texts[0].Title, "Wikidata dump 20150120")
	is.Equal(doc.Catalog.Datasets, []string{uri + "#liveData", uri + "#dumpData20150120", uri + "#dumpData20150126"})
}

func TestMissingDumpCombinationsAreSkipped(t *testing.T) {
	is, cfg := testSetup(t, false, true)

	inventory := testInventory()
	inventory.Add("20150126", "ntbz2", dumps.File{Timestamp: "2015-01-27", ByteSize: 17, Filename: "20150126/wikidata-20150126-truthy-BETA.nt.bz2"})

	distributions := NewBuilder(cfg, testBundle(), inventory).BuildDistributions(context.Background(), domain.KindDump, "20150126")

	is.Equal(len(distributions), 2) // jsongz and ntbz2 exist, jsonbz2 and ntgz do not
	is.Equal(distributions[0].About, uri+"#dumpDist20150126jsongz")
	is.Equal(distributions[1].About, uri+"#dumpDist20150126ntbz2")
	is.Equal(distributions[1].Descriptions[0].Text, "A N-Triples dump compressed with bz2")

	distributions = NewBuilder(cfg, testBundle(), inventory).BuildDistributions(context.Background(), domain.KindDump, "20991231")
	is.Equal(len(distributions), 0)
}

func TestDumpDatasetIdentifiersAreUnique(t *testing.T) {
	is, cfg := testSetup(t, false, true)

	inventory := dumps.NewInventory()
	for _, date := range []string{"20150120", "2015012", "20150126", "201501260"} {
		inventory.Add(date, "jsongz", dumps.File{Filename: date + "/x-all.json.gz"})
	}

	doc := NewBuilder(cfg, testBundle(), inventory).Build(context.Background())

	seen := map[string]bool{}
	for _, dump := range doc.Dumps {
		is.Equal(dump.Dataset.About, uri+"#dumpData"+dump.Date)
		is.True(!seen[dump.Dataset.About]) // duplicate dataset identifier
		seen[dump.Dataset.About] = true
	}
	is.Equal(len(seen), 4)
}

func TestCatalogUsesClockAndLanguages(t *testing.T) {
	is, cfg := testSetup(t, false, false)

	clock := func() time.Time { return time.Date(2015, 2, 1, 23, 0, 0, 0, time.UTC) }
	c := NewBuilder(cfg, testBundle(), nil, WithClock(clock)).BuildCatalog([]string{uri + "#liveData"})

	is.Equal(c.About, uri+"#catalog")
	is.Equal(c.Modified, "2015-02-01")
	is.Equal(c.Issued, "2015-08-01")
	is.Equal(c.ThemeTaxonomy, EuroVocPrefix)
	is.Equal(len(c.Languages), 2)
	is.Equal(c.Languages[0].URI, ISO6391Prefix+"en")
	is.Equal(*c.Languages[0].Title, "Wikidata")
	is.Equal(c.Languages[1].URI, ISO6391Prefix+"sv")
	is.True(c.Languages[1].Title == nil) // sv has no catalog title
}

func TestDatasetCarriesKeywordsThemesAndNodes(t *testing.T) {
	is, cfg := testSetup(t, false, false)

	ds := NewBuilder(cfg, testBundle(), nil).BuildDataset("", []string{"a"})

	is.Equal(ds.Keywords, []string{"knowledge", "open data"})
	is.Equal(ds.Themes, []string{EuroVocPrefix + "100142", EuroVocPrefix + "100151"})
	is.Equal(ds.Publisher, "_n42")
	is.Equal(ds.ContactPoint, "_n43")
	is.Equal(len(ds.Texts), 2)
	is.Equal(ds.Texts[1], domain.Localized{Lang: "sv", Title: textOf("Direktåtkomst till Wikidata")})
}

func TestEmptyTranslationsAreKeptForEveryRecord(t *testing.T) {
	is, cfg := testSetup(t, true, false)

	bundle := i18n.NewBundle(i18n.Language{Code: "en", Messages: map[string]string{
		"catalog-title":                "",
		"dataset-live-description":     "",
		"distribution-api-description": "",
	}})
	b := NewBuilder(cfg, bundle, nil)

	ds := b.BuildDataset("", []string{})
	is.Equal(ds.Texts, []domain.Localized{{Lang: "en", Description: textOf("")}})

	c := b.BuildCatalog([]string{})
	is.Equal(c.Languages[0].Title, textOf(""))
	is.True(c.Languages[0].Description == nil)

	distributions := b.BuildDistributions(context.Background(), domain.KindAPI, "")
	is.Equal(distributions[0].Descriptions, []domain.LocalizedText{{Lang: "en", Text: ""}})
}

func testSetup(t *testing.T, apiEnabled, dumpsEnabled bool) (*is.I, *config.Config) {
	is := is.New(t)

	source := strings.NewReplacer(
		`"api-enabled": false`, `"api-enabled": `+boolString(apiEnabled),
		`"dumps-enabled": false`, `"dumps-enabled": `+boolString(dumpsEnabled),
	).Replace(configJSON)

	doc, err := config.Parse([]byte(source))
	is.NoErr(err)
	is.NoErr(config.Validate(doc))

	cfg, err := config.Decode(doc)
	is.NoErr(err)

	return is, cfg
}

func textOf(s string) *string {
	return &s
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func testBundle() i18n.Bundle {
	return i18n.NewBundle(
		i18n.Language{Code: "en", Messages: map[string]string{
			"catalog-title":                 "Wikidata",
			"dataset-live-title":            "Live access to Wikidata",
			"dataset-live-description":      "The live version of Wikidata",
			"dataset-dump-title":            "Wikidata dump $1",
			"dataset-dump-description":      "A complete copy of Wikidata",
			"distribution-api-description":  "The Wikidata API",
			"distribution-dump-description": "A $1 dump compressed with $2",
		}},
		i18n.Language{Code: "sv", Messages: map[string]string{
			"dataset-live-title": "Direktåtkomst till Wikidata",
		}},
	)
}

func testInventory() *dumps.Inventory {
	inventory := dumps.NewInventory()
	inventory.Add("20150120", "jsongz", dumps.File{Timestamp: "2015-01-21", ByteSize: 3969097664, Filename: "20150120/wikidata-20150120-all.json.gz"})
	inventory.Add("20150126", "jsongz", dumps.File{Timestamp: "2015-01-26", ByteSize: 3997877455, Filename: "20150126/wikidata-20150126-all.json.gz"})
	return inventory
}

const configJSON string = `{
	"directory": "/public/dumps/wikidatawiki/entities",
	"api-enabled": false,
	"dumps-enabled": false,
	"uri": "https://dumps.example.org/dcatap.rdf",
	"catalog-homepage": "https://www.wikidata.org",
	"catalog-issued": "2015-08-01",
	"catalog-license": "https://creativecommons.org/publicdomain/zero/1.0/",
	"catalog-i18n": "https://www.example.org/i18n.json",
	"keywords": ["knowledge", "open data"],
	"themes": ["100142", "100151"],
	"publisher": {
		"publisherType": "NonProfitOrganisation",
		"homepage": "https://wikimediafoundation.org/",
		"name": "Wikimedia Foundation",
		"email": "info@wikimedia.org"
	},
	"contactPoint": {
		"vcardType": "Organization",
		"name": "Wikidata information team",
		"email": "wikidata@lists.wikimedia.org"
	},
	"ld-info": {
		"accessURL": "https://www.wikidata.org/wiki/Special:EntityData/",
		"mediatype": {"json": "application/json", "ttl": "text/turtle"},
		"license": "https://creativecommons.org/publicdomain/zero/1.0/"
	},
	"api-info": {
		"accessURL": "https://www.wikidata.org/w/api.php",
		"mediatype": {"json": "application/json"},
		"license": "https://creativecommons.org/publicdomain/zero/1.0/"
	},
	"dump-info": {
		"accessURL": "https://dumps.example.org/wikidatawiki/entities/$1",
		"mediatype": {
			"json": "application/json",
			"nt": {"mediatype": "application/n-triples", "format": "N-Triples", "prefix": "truthy-BETA"}
		},
		"compression": {"gz": "application/gzip", "bz2": "application/x-bzip2"},
		"license": "https://creativecommons.org/publicdomain/zero/1.0/"
	}
}`
