package rdf

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/diwise/wikibase-dcatap/internal/pkg/domain"
)

const Indent string = "    "

// Marshal renders doc as RDF/XML. Records are written in a fixed order so
// that identical input always produces identical output.
func Marshal(doc domain.Document) ([]byte, error) {
	rdf := NewRDF()

	rdf.Descriptions = append(rdf.Descriptions, publisher(doc.Publisher), contactPoint(doc.ContactPoint))

	for _, d := range doc.LiveDistributions {
		rdf.Descriptions = append(rdf.Descriptions, distribution(d))
	}
	rdf.Descriptions = append(rdf.Descriptions, dataset(doc.LiveDataset))

	for _, dump := range doc.Dumps {
		for _, d := range dump.Distributions {
			rdf.Descriptions = append(rdf.Descriptions, distribution(d))
		}
		rdf.Descriptions = append(rdf.Descriptions, dataset(dump.Dataset))
	}

	rdf.Descriptions = append(rdf.Descriptions, catalog(doc.Catalog))

	data, err := xml.MarshalIndent(rdf, "", Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog to rdf/xml: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')

	return out, nil
}

func publisher(a domain.Agent) Description {
	d := Description{Attr_rdf_node: a.NodeID}
	d.add(
		resource("rdf:type", NamespaceFOAF+"Agent"),
		literal("foaf:name", a.Name),
		resource("dcterms:type", a.PublisherType),
		literal("foaf:homepage", a.Homepage),
		resource("vcard:hasEmail", a.Email),
	)
	return d
}

func contactPoint(cp domain.ContactPoint) Description {
	d := Description{Attr_rdf_node: cp.NodeID}
	d.add(
		resource("rdf:type", NamespaceVCard+cp.Type),
		resource("vcard:hasEmail", cp.Email),
		literal("vcard:fn", cp.Name),
	)
	return d
}

func distribution(dist domain.Distribution) Description {
	d := Description{Attr_rdf_about: dist.About}
	d.add(
		resource("rdf:type", NamespaceDCAT+"Distribution"),
		resource("dcterms:license", dist.License),
		resource("dcat:accessURL", dist.AccessURL),
	)

	if dist.Kind == domain.KindDump {
		d.add(
			resource("dcat:downloadURL", dist.DownloadURL),
			literal("dcterms:issued", dist.Issued),
			typedLiteral("dcat:byteSize", XSDDecimal, strconv.FormatInt(dist.ByteSize, 10)),
		)
	}

	d.add(
		literal("dcterms:format", dist.Format),
		literal("dcat:mediaType", dist.MediaType),
	)

	if dist.CompressFormat != "" {
		d.add(literal("dcat:compressFormat", dist.CompressFormat))
	}

	for _, text := range dist.Descriptions {
		d.add(langLiteral("dcterms:description", text.Lang, text.Text))
	}

	return d
}

func dataset(ds domain.Dataset) Description {
	d := Description{Attr_rdf_about: ds.About}
	d.add(
		resource("rdf:type", NamespaceDCAT+"Dataset"),
		nodeRef("adms:contactPoint", ds.ContactPoint),
		nodeRef("dcterms:publisher", ds.Publisher),
	)

	if ds.AccrualPeriodicity != "" {
		d.add(resource("dcterms:accrualPeriodicity", ds.AccrualPeriodicity))
	}

	for _, keyword := range ds.Keywords {
		d.add(literal("dcat:keyword", keyword))
	}

	for _, theme := range ds.Themes {
		d.add(resource("dcat:theme", theme))
	}

	for _, text := range ds.Texts {
		d.add(localized(text)...)
	}

	for _, id := range ds.Distributions {
		d.add(resource("dcat:distribution", id))
	}

	return d
}

func catalog(c domain.Catalog) Description {
	d := Description{Attr_rdf_about: c.About}
	d.add(
		resource("rdf:type", NamespaceDCAT+"Catalog"),
		resource("dcterms:license", c.License),
		resource("dcat:themeTaxonomy", c.ThemeTaxonomy),
		literal("foaf:homepage", c.Homepage),
		literal("dcterms:modified", c.Modified),
		literal("dcterms:issued", c.Issued),
		nodeRef("dcterms:publisher", c.Publisher),
	)

	for _, lang := range c.Languages {
		d.add(resource("dcterms:language", lang.URI))
		d.add(localized(lang.Localized)...)
	}

	for _, id := range c.Datasets {
		d.add(resource("dcat:dataset", id))
	}

	return d
}

func localized(text domain.Localized) []Property {
	props := []Property{}
	if text.Title != nil {
		props = append(props, langLiteral("dcterms:title", text.Lang, *text.Title))
	}
	if text.Description != nil {
		props = append(props, langLiteral("dcterms:description", text.Lang, *text.Description))
	}
	return props
}
