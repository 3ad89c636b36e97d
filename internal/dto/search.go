package dto

// SearchRequest is the payload used by the discovery endpoint. Radius and
// result caps come from service configuration.
type SearchRequest struct {
	Location string `json:"location"`
}
