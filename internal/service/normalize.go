package service

import (
	"sync"

	"github.com/nyaruka/phonenumbers"

	"github.com/octobees/recycling-finder/internal/entity"
	"github.com/octobees/recycling-finder/internal/hours"
	"github.com/octobees/recycling-finder/internal/materials"
)

const defaultNormalizeWorkers = 4

// Normalizer converts raw business records into normalized ones: parsed
// weekly schedule, reconciled materials, E.164 phone, quality score. All
// transforms are pure, so records normalize independently and in parallel.
type Normalizer struct {
	reconciler  *materials.Reconciler
	phoneRegion string
	workers     int
}

// NewNormalizer builds a normalizer over the given vocabulary. The phone
// region seeds parsing of national-format numbers from the places API.
func NewNormalizer(vocab []entity.Material, phoneRegion string) *Normalizer {
	if phoneRegion == "" {
		phoneRegion = "GB"
	}
	return &Normalizer{
		reconciler:  materials.NewReconciler(vocab),
		phoneRegion: phoneRegion,
		workers:     defaultNormalizeWorkers,
	}
}

// NormalizeAll normalizes every record on a bounded worker pool. Results are
// written into an index-addressed slice, so output order always matches
// input order and the assigned refs are stable across runs.
func (n *Normalizer) NormalizeAll(records []entity.Business) []entity.NormalizedBusiness {
	normalized := make([]entity.NormalizedBusiness, len(records))

	workers := n.workers
	if workers > len(records) {
		workers = len(records)
	}
	if workers <= 1 {
		for i, record := range records {
			normalized[i] = n.Normalize(i, record)
		}
		return normalized
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				normalized[i] = n.Normalize(i, records[i])
			}
		}()
	}
	for i := range records {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return normalized
}

// Normalize derives the normalized record for one business. The ref becomes
// the within-batch synthetic identifier during emission.
func (n *Normalizer) Normalize(ref int, record entity.Business) entity.NormalizedBusiness {
	nb := entity.NormalizedBusiness{
		Business:  record,
		Ref:       ref,
		Schedule:  hours.ParseWeek(record.OpeningHours),
		Matches:   n.reconciler.Reconcile(record.Materials, record.WebsiteMaterials),
		PhoneE164: normalizePhone(record.Phone, n.phoneRegion),
	}
	nb.QualityScore = ComputeQuality(nb)
	return nb
}

// normalizePhone returns the E.164 form of a scraped phone number, or nil
// when the number does not parse or validate.
func normalizePhone(raw *string, region string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	parsed, err := phonenumbers.Parse(*raw, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return nil
	}
	formatted := phonenumbers.Format(parsed, phonenumbers.E164)
	return &formatted
}
