package dto

// BusinessFilter contains query parameters for business listing endpoints.
type BusinessFilter struct {
	Q         string
	City      string
	Material  string
	MinRating *float64
	Page      int
	PerPage   int
}
