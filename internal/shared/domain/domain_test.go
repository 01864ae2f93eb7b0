package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesapi/internal/shared/domain"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    int
		wantErr bool
	}{
		{name: "entier simple", cell: "30", want: 30},
		{name: "espaces autour", cell: "  12 ", want: 12},
		{name: "cellule vide vaut zéro", cell: "", want: 0},
		{name: "décimal tronqué", cell: "30.0", want: 30},
		{name: "décimal non rond tronqué", cell: "7.9", want: 7},
		{name: "négatif refusé", cell: "-3", wantErr: true},
		{name: "texte refusé", cell: "beaucoup", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := domain.ParseQuantity(tt.cell)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Value())
		})
	}
}

func TestParsePrice(t *testing.T) {
	p, err := domain.ParsePrice("199.99")
	require.NoError(t, err)
	assert.InDelta(t, 199.99, p.Amount(), 1e-9)

	_, err = domain.ParsePrice("")
	assert.Error(t, err)

	_, err = domain.ParsePrice("gratuit")
	assert.Error(t, err)

	_, err = domain.ParsePrice("-1.50")
	assert.Error(t, err)
}

func TestPriceMultiply(t *testing.T) {
	p, err := domain.NewPrice(2.5)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, p.Multiply(domain.MustNewQuantity(10)), 1e-9)
	assert.InDelta(t, 0.0, p.Multiply(domain.MustNewQuantity(0)), 1e-9)
}

func TestParseYearMonth(t *testing.T) {
	d, err := domain.ParseYearMonth("2023-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = domain.ParseYearMonth("Product Name")
	assert.Error(t, err)

	_, err = domain.ParseYearMonth("2023-07-15")
	assert.Error(t, err)
}

func TestNewTrailingYearPreservesDayOfMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	window := domain.NewTrailingYear(now)

	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), window.Start())
	assert.Equal(t, now, window.End())
}

func TestNewTrailingYearLeapDay(t *testing.T) {
	// Le 29 février n'existe pas l'année précédente; AddDate
	// normalise vers le 1er mars.
	now := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	window := domain.NewTrailingYear(now)

	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), window.Start())
}

func TestNewDateRangeRejectsInvertedBounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := domain.NewDateRange(start, start.AddDate(0, 0, -1))
	assert.Error(t, err)
}

func TestIsIntegrityViolation(t *testing.T) {
	assert.False(t, domain.IsIntegrityViolation(nil))
	assert.False(t, domain.IsIntegrityViolation(errors.New("connection refused")))

	pqErr := &pq.Error{Code: "23505"}
	assert.True(t, domain.IsIntegrityViolation(pqErr))

	pqOther := &pq.Error{Code: "23503"}
	assert.False(t, domain.IsIntegrityViolation(pqOther))

	sqliteErr := errors.New("constraint failed: UNIQUE constraint failed: products.id (1555)")
	assert.True(t, domain.IsIntegrityViolation(sqliteErr))
}

func TestDataFormatErrorUnwrap(t *testing.T) {
	cause := errors.New("bad header")
	err := &domain.DataFormatError{Path: "/tmp/data.csv", Err: cause}

	assert.Contains(t, err.Error(), "/tmp/data.csv")
	assert.ErrorIs(t, err, cause)
}
