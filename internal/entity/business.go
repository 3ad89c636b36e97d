package entity

// Coordinates is a WGS84 point returned by the geocoder.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressComponents holds the structured address parts from the place details
// response. Components the geocoder did not return stay empty.
type AddressComponents struct {
	StreetAddress string `json:"street_address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
}

// StoredBusiness is a persisted business row as read back from the store.
type StoredBusiness struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Phone           *string  `json:"phone,omitempty"`
	Website         *string  `json:"website,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	PlaceID         string   `json:"place_id"`
	ServiceKeywords []string `json:"service_keywords,omitempty"`
}

// Business is the raw record for one discovered recycling business, assembled
// from the places lookup and the website scan. It is immutable once
// normalization starts.
type Business struct {
	Name             string              `json:"name"`
	Address          string              `json:"address"`
	Coordinates      Coordinates         `json:"coordinates"`
	PlaceID          string              `json:"place_id"`
	Phone            *string             `json:"phone,omitempty"`
	Website          *string             `json:"website,omitempty"`
	Rating           *float64            `json:"rating,omitempty"`
	OpeningHours     []string            `json:"opening_hours"`
	Materials        []string            `json:"materials"`
	WebsiteMaterials map[string][]string `json:"website_materials"`
	ServiceKeywords  []string            `json:"service_keywords,omitempty"`
	AddressParts     AddressComponents   `json:"address_components"`
}
