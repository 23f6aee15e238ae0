package docx

import "encoding/xml"

// Page geometry in inches: US Letter with 1 inch margins.
const (
	PageWidthInches  = 8.5
	PageHeightInches = 11.0
	MarginInches     = 1.0
)

const (
	twipsPerInch = 1440
	headerTwips  = 720
)

// corePropertiesXML is docProps/core.xml.
type corePropertiesXML struct {
	XMLName xml.Name    `xml:"cp:coreProperties"`
	CP      string      `xml:"xmlns:cp,attr"`
	DC      string      `xml:"xmlns:dc,attr"`
	DCTerms string      `xml:"xmlns:dcterms,attr"`
	XSI     string      `xml:"xmlns:xsi,attr"`
	Title   string      `xml:"dc:title,omitempty"`
	Creator string      `xml:"dc:creator"`
	Created *createdXML `xml:"dcterms:created,omitempty"`
}

type createdXML struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

const (
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
)
