package batch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/recycling-finder/internal/entity"
)

const (
	serviceName        = "Recycling Collection"
	fallbackServiceDsc = "General recycling services"
)

// Emitter assembles the multi-table insert batch for a set of normalized
// businesses. It only builds statements; executing them is the repository's
// job.
type Emitter struct {
	// VerificationSource is stamped on business_materials rows to record
	// where the match came from.
	VerificationSource string
}

// NewEmitter returns an emitter with the default verification source.
func NewEmitter() *Emitter {
	return &Emitter{VerificationSource: "pipeline"}
}

// Build produces one group per business, each in the fixed order: parent row,
// address components, hours, material links, service summary. Group order
// follows input order so the ledger reads in discovery order.
func (e *Emitter) Build(businesses []entity.NormalizedBusiness) Batch {
	b := Batch{RunID: uuid.New(), Groups: make([]Group, 0, len(businesses))}
	for _, nb := range businesses {
		b.Groups = append(b.Groups, e.buildGroup(nb))
	}
	return b
}

func (e *Emitter) buildGroup(nb entity.NormalizedBusiness) Group {
	g := Group{Ref: nb.Ref, Name: nb.Name, PlaceID: nb.PlaceID}

	phone := nb.Phone
	if nb.PhoneE164 != nil {
		phone = nb.PhoneE164
	}

	g.Statements = append(g.Statements, Statement{
		Table: "recycling.businesses",
		SQL: `INSERT INTO recycling.businesses
            (name, formatted_address, latitude, longitude, phone_number, website, rating, place_id, service_keywords)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING business_id`,
		Args: []any{
			nb.Name,
			nb.Address,
			nb.Coordinates.Lat,
			nb.Coordinates.Lng,
			phone,
			nb.Website,
			nb.Rating,
			nb.PlaceID,
			strings.Join(nb.ServiceKeywords, ","),
		},
	})

	var street any
	if nb.AddressParts.StreetAddress != "" {
		street = nb.AddressParts.StreetAddress
	}
	g.Statements = append(g.Statements, Statement{
		Table: "recycling.address_components",
		SQL: `INSERT INTO recycling.address_components
            (business_id, street_address, city, state, postal_code, country)
            VALUES ($1, $2, $3, $4, $5, $6)`,
		Args: []any{
			ParentKey{Ref: nb.Ref},
			street,
			nb.AddressParts.City,
			nb.AddressParts.State,
			nb.AddressParts.PostalCode,
			nb.AddressParts.Country,
		},
	})

	for _, day := range nb.Schedule {
		var open, closeAt any
		if day.Open != nil {
			open = day.Open.String()
		}
		if day.Close != nil {
			closeAt = day.Close.String()
		}
		g.Statements = append(g.Statements, Statement{
			Table: "recycling.business_hours",
			SQL: `INSERT INTO recycling.business_hours
                (business_id, day_of_week, open_time, close_time, is_closed)
                VALUES ($1, $2, $3, $4, $5)`,
			Args: []any{ParentKey{Ref: nb.Ref}, int(day.Day), open, closeAt, day.Closed},
		})
	}

	for _, match := range nb.Matches {
		g.Statements = append(g.Statements, Statement{
			Table: "recycling.business_materials",
			SQL: `INSERT INTO recycling.business_materials
                (business_id, material_id, category_name, description, is_verified, verification_source, date_verified)
                SELECT $1, material_id, $2, $3, TRUE, $4, NOW()
                FROM recycling.materials WHERE description = $5`,
			Args: []any{ParentKey{Ref: nb.Ref}, match.Category, match.Description, e.VerificationSource, match.Description},
		})
	}

	g.Statements = append(g.Statements, Statement{
		Table: "recycling.business_services",
		SQL: `INSERT INTO recycling.business_services
            (business_id, service_name, description)
            VALUES ($1, $2, $3)`,
		Args: []any{ParentKey{Ref: nb.Ref}, serviceName, serviceDescription(nb.Matches)},
	})

	return g
}

// serviceDescription synthesizes the summary line from the matched
// categories, or falls back to the generic description when nothing matched.
func serviceDescription(matches []entity.MaterialMatch) string {
	if len(matches) == 0 {
		return fallbackServiceDsc
	}
	seen := make(map[string]struct{}, len(matches))
	categories := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		categories = append(categories, m.Category)
	}
	sort.Strings(categories)
	return fmt.Sprintf("Recycling services for %s", strings.Join(categories, ", "))
}
