package domain

import (
	"errors"
	"time"
)

// DateLayout est le format de stockage des dates (TEXT ISO-8601);
// l'ordre lexicographique coïncide avec l'ordre chronologique.
const DateLayout = "2006-01-02"

// YearMonthLayout est le format des en-têtes de colonnes mensuelles
const YearMonthLayout = "2006-01"

// DateRange représente une période temporelle avec validation
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée un DateRange validé
func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, errors.New("end cannot precede start")
	}
	return DateRange{start: start, end: end}, nil
}

// NewTrailingYear retourne la fenêtre d'exactement une année calendaire
// se terminant à now, jour du mois préservé. AddDate normalise le
// 29 février des années non bissextiles vers le 1er mars.
func NewTrailingYear(now time.Time) DateRange {
	return DateRange{
		start: now.AddDate(-1, 0, 0),
		end:   now,
	}
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// ParseYearMonth interprète un en-tête de colonne "2023-07" comme le
// premier jour du mois correspondant
func ParseYearMonth(header string) (time.Time, error) {
	return time.Parse(YearMonthLayout, header)
}
