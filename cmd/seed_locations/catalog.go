package main

import (
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

// catálogo por defecto (ISO-8859-1), embebido en el binario.
//
//go:embed catalog.xml
var defaultCatalog []byte

type catalog struct {
	XMLName   xml.Name         `xml:"catalogo"`
	Countries []catalogCountry `xml:"pais"`
}

type catalogCountry struct {
	Name         string         `xml:"nombre,attr"`
	ISO2         string         `xml:"iso2,attr"`
	ISO3         string         `xml:"iso3,attr"`
	Numeric      string         `xml:"numerico,attr"`
	Phone        string         `xml:"telefono,attr"`
	Currency     string         `xml:"moneda,attr"`
	CurrencyName string         `xml:"nombreMoneda,attr"`
	States       []catalogState `xml:"estado"`
}

type catalogState struct {
	Code string `xml:"codigo,attr"`
	Name string `xml:"nombre,attr"`
}

// parseCatalog decodifica el XML; acepta UTF-8 e ISO-8859-1.
func parseCatalog(r io.Reader) (*catalog, error) {
	var c catalog
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		case "UTF-8", "":
			return input, nil
		}
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}
	return &c, nil
}

func (c catalogCountry) request() dto.CreateCountryRequest {
	return dto.CreateCountryRequest{
		Name:         c.Name,
		ISOCode2:     c.ISO2,
		ISOCode3:     c.ISO3,
		NumericCode:  optional(c.Numeric),
		PhoneCode:    optional(c.Phone),
		CurrencyCode: optional(c.Currency),
		CurrencyName: optional(c.CurrencyName),
	}
}

func (s catalogState) request(countryID int64) dto.CreateStateRequest {
	return dto.CreateStateRequest{Name: s.Name, Code: s.Code, CountryID: countryID}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
