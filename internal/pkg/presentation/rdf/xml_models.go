package rdf

import "encoding/xml"

const (
	NamespaceRDF     string = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceDCTerms string = "http://purl.org/dc/terms/"
	NamespaceDCAT    string = "http://www.w3.org/ns/dcat#"
	NamespaceFOAF    string = "http://xmlns.com/foaf/0.1/"
	NamespaceADMS    string = "http://www.w3.org/ns/adms#"
	NamespaceVCard   string = "http://www.w3.org/2006/vcard/ns#"

	XSDDecimal string = "http://www.w3.org/2001/XMLSchema#decimal"
)

type Rdf_RDF struct {
	XMLName      xml.Name      `xml:"rdf:RDF"`
	Attr_rdf     string        `xml:"xmlns:rdf,attr"`
	Attr_dcterms string        `xml:"xmlns:dcterms,attr"`
	Attr_dcat    string        `xml:"xmlns:dcat,attr"`
	Attr_foaf    string        `xml:"xmlns:foaf,attr"`
	Attr_adms    string        `xml:"xmlns:adms,attr"`
	Attr_vcard   string        `xml:"xmlns:vcard,attr"`
	Descriptions []Description `xml:"rdf:Description"`
}

func NewRDF() *Rdf_RDF {
	return &Rdf_RDF{
		Attr_rdf:     NamespaceRDF,
		Attr_dcterms: NamespaceDCTerms,
		Attr_dcat:    NamespaceDCAT,
		Attr_foaf:    NamespaceFOAF,
		Attr_adms:    NamespaceADMS,
		Attr_vcard:   NamespaceVCard,
		Descriptions: []Description{},
	}
}

// Description is a single subject, identified either by an URI or by a blank node id
type Description struct {
	XMLName        xml.Name `xml:"rdf:Description"`
	Attr_rdf_about string   `xml:"rdf:about,attr,omitempty"`
	Attr_rdf_node  string   `xml:"rdf:nodeID,attr,omitempty"`
	Properties     []Property
}

// Property is one predicate of a Description. The element name is carried in
// XMLName so that a single type can render every predicate.
type Property struct {
	XMLName           xml.Name
	Attr_rdf_resource string `xml:"rdf:resource,attr,omitempty"`
	Attr_rdf_node     string `xml:"rdf:nodeID,attr,omitempty"`
	Attr_rdf_datatype string `xml:"rdf:datatype,attr,omitempty"`
	Attr_xml_lang     string `xml:"xml:lang,attr,omitempty"`
	Value             string `xml:",chardata"`
}

func (d *Description) add(p ...Property) {
	d.Properties = append(d.Properties, p...)
}

func resource(name, uri string) Property {
	return Property{XMLName: xml.Name{Local: name}, Attr_rdf_resource: uri}
}

func nodeRef(name, nodeID string) Property {
	return Property{XMLName: xml.Name{Local: name}, Attr_rdf_node: nodeID}
}

func literal(name, value string) Property {
	return Property{XMLName: xml.Name{Local: name}, Value: value}
}

func typedLiteral(name, datatype, value string) Property {
	return Property{XMLName: xml.Name{Local: name}, Attr_rdf_datatype: datatype, Value: value}
}

func langLiteral(name, lang, value string) Property {
	return Property{XMLName: xml.Name{Local: name}, Attr_xml_lang: lang, Value: value}
}
