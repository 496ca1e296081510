package domain

// Kind identifies the three flavours of distributions a catalog can describe
type Kind int

const (
	KindLD Kind = iota
	KindAPI
	KindDump
)

func (k Kind) String() string {
	switch k {
	case KindLD:
		return "ld"
	case KindAPI:
		return "api"
	case KindDump:
		return "dump"
	}
	return "unknown"
}

// Identifiers holds the fixed node ids and fragment prefixes used when minting subjects
type Identifiers struct {
	Publisher         string
	ContactPoint      string
	Catalog           string
	LiveDataset       string
	DumpDatasetPrefix string
	LiveDistribLD     string
	LiveDistribAPI    string
	DumpDistribPrefix string
}

func DefaultIdentifiers() Identifiers {
	return Identifiers{
		Publisher:         "_n42",
		ContactPoint:      "_n43",
		Catalog:           "catalog",
		LiveDataset:       "liveData",
		DumpDatasetPrefix: "dumpData",
		LiveDistribLD:     "liveDataLD",
		LiveDistribAPI:    "liveDataAPI",
		DumpDistribPrefix: "dumpDist",
	}
}

func (ids Identifiers) DistributionPrefix(k Kind) string {
	switch k {
	case KindLD:
		return ids.LiveDistribLD
	case KindAPI:
		return ids.LiveDistribAPI
	default:
		return ids.DumpDistribPrefix
	}
}

type LocalizedText struct {
	Lang string
	Text string
}

// Localized carries a title/description pair for a single language. A nil
// pointer means the language does not define that message.
type Localized struct {
	Lang        string
	Title       *string
	Description *string
}

// Agent is the publisher of the catalog and its datasets
type Agent struct {
	NodeID        string
	Name          string
	PublisherType string
	Homepage      string
	Email         string
}

type ContactPoint struct {
	NodeID string
	Type   string
	Name   string
	Email  string
}

type Distribution struct {
	About          string
	Kind           Kind
	License        string
	AccessURL      string
	DownloadURL    string
	Issued         string
	ByteSize       int64
	Format         string
	MediaType      string
	CompressFormat string
	Descriptions   []LocalizedText
}

type Dataset struct {
	About              string
	DumpDate           string
	ContactPoint       string
	Publisher          string
	AccrualPeriodicity string
	Keywords           []string
	Themes             []string
	Texts              []Localized
	Distributions      []string
}

func (d Dataset) IsLive() bool {
	return d.DumpDate == ""
}

type CatalogLanguage struct {
	Localized
	URI string
}

type Catalog struct {
	About         string
	License       string
	ThemeTaxonomy string
	Homepage      string
	Modified      string
	Issued        string
	Publisher     string
	Languages     []CatalogLanguage
	Datasets      []string
}

// Dump groups the records generated for a single dump date
type Dump struct {
	Date          string
	Distributions []Distribution
	Dataset       Dataset
}

// Document is the complete, ordered set of records making up one catalog description
type Document struct {
	Publisher         Agent
	ContactPoint      ContactPoint
	LiveDistributions []Distribution
	LiveDataset       Dataset
	Dumps             []Dump
	Catalog           Catalog
}

// DatasetCount returns the number of datasets referenced by the catalog
func (d Document) DatasetCount() int {
	return len(d.Catalog.Datasets)
}

// DistributionCount returns the total number of distributions in the document
func (d Document) DistributionCount() int {
	count := len(d.LiveDistributions)
	for _, dump := range d.Dumps {
		count += len(dump.Distributions)
	}
	return count
}
