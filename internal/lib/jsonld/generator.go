package jsonld

import (
	"encoding/json"
	"fmt"
	"time"

	"estate_search/internal/domain"
)

// Generator — генератор JSON-LD разметки для объектов недвижимости.
type Generator struct{}

// NewGenerator создаёт новый генератор JSON-LD.
func NewGenerator() *Generator {
	return &Generator{}
}

// RealEstateListing — JSON-LD структура для листинга недвижимости (schema.org).
type RealEstateListing struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	ID           string `json:"@id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url,omitempty"`
	DatePosted   string `json:"datePosted,omitempty"`
	DateModified string `json:"dateModified,omitempty"`

	Offers  *Offer         `json:"offers,omitempty"`
	Address *PostalAddress `json:"address,omitempty"`

	NumberOfBedrooms  *int32 `json:"numberOfBedrooms,omitempty"`
	NumberOfBathrooms *int32 `json:"numberOfBathroomsTotal,omitempty"`
	FloorSize         string `json:"floorSize,omitempty"`

	PropertyType string   `json:"propertyType,omitempty"`
	Image        []string `json:"image,omitempty"`
}

// Offer — предложение (цена) по schema.org.
type Offer struct {
	Type          string  `json:"@type"`
	Price         float64 `json:"price,omitempty"`
	PriceCurrency string  `json:"priceCurrency"`
	Availability  string  `json:"availability,omitempty"`
}

// PostalAddress — почтовый адрес по schema.org.
type PostalAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// GeneratePropertyJSONLD генерирует JSON-LD разметку для объекта недвижимости.
func (g *Generator) GeneratePropertyJSONLD(property domain.Property, baseURL string) *RealEstateListing {
	listing := &RealEstateListing{
		Context:      "https://schema.org",
		Type:         g.mapPropertyType(property.Type),
		ID:           fmt.Sprintf("%s/properties/%s", baseURL, property.ID.String()),
		Name:         property.Title,
		Description:  property.Description,
		URL:          fmt.Sprintf("%s/properties/%s", baseURL, property.ID.String()),
		DatePosted:   property.CreatedAt.Format(time.RFC3339),
		DateModified: property.UpdatedAt.Format(time.RFC3339),
		PropertyType: property.Type.String(),
		FloorSize:    property.Area,
	}

	if property.Price > 0 {
		listing.Offers = &Offer{
			Type:          "Offer",
			Price:         property.Price,
			PriceCurrency: "INR",
			Availability:  g.mapPropertyStatus(property.Status),
		}
	}

	if property.Location != "" {
		listing.Address = &PostalAddress{
			Type:            "PostalAddress",
			AddressLocality: property.Location,
			AddressCountry:  "IN",
		}
	}

	if property.Bedrooms > 0 {
		bedrooms := property.Bedrooms
		listing.NumberOfBedrooms = &bedrooms
	}
	if property.Bathrooms > 0 {
		bathrooms := property.Bathrooms
		listing.NumberOfBathrooms = &bathrooms
	}
	if property.ImageURL != "" {
		listing.Image = []string{property.ImageURL}
	}

	return listing
}

// GeneratePropertyJSONLDBytes генерирует JSON-LD в байтах.
func (g *Generator) GeneratePropertyJSONLDBytes(property domain.Property, baseURL string) ([]byte, error) {
	listing := g.GeneratePropertyJSONLD(property, baseURL)

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON-LD: %w", err)
	}

	return data, nil
}

// mapPropertyType преобразует тип недвижимости в schema.org тип.
func (g *Generator) mapPropertyType(pt domain.PropertyType) string {
	switch pt {
	case domain.PropertyTypeResidential:
		return "Residence"
	case domain.PropertyTypeCommercial:
		return "RealEstateListing"
	default:
		return "RealEstateListing"
	}
}

// mapPropertyStatus преобразует статус в schema.org availability.
func (g *Generator) mapPropertyStatus(status domain.PropertyStatus) string {
	switch status {
	case domain.PropertyStatusSold:
		return "https://schema.org/SoldOut"
	default:
		return "https://schema.org/InStock"
	}
}
