package forecast_test

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesapi/internal/forecast"
	"salesapi/internal/shared/domain"
)

func trainedModels(t *testing.T) (*forecast.TrainedModel, *forecast.TrainedModel, forecast.Split) {
	t.Helper()

	split := forecast.SplitDataset(linearObservations(40))
	quantityModel, err := forecast.TrainModel(split, forecast.TargetQuantity)
	require.NoError(t, err)
	revenueModel, err := forecast.TrainModel(split, forecast.TargetRevenue)
	require.NoError(t, err)
	return quantityModel, revenueModel, split
}

func TestBuildReportRows(t *testing.T) {
	quantityModel, revenueModel, split := trainedModels(t)

	report, err := forecast.BuildReport(quantityModel, revenueModel, split)
	require.NoError(t, err)
	require.Len(t, report.Rows, len(split.Test))

	for i, row := range report.Rows {
		o := split.Test[i]
		assert.Equal(t, o.ProductID, row.ProductID)
		assert.Equal(t, o.Quantity, row.ActualQuantity)
		assert.InDelta(t, o.Revenue, row.ActualRevenue, 1e-9)
		// Résidus signés: observé - prédit
		assert.InDelta(t, float64(row.ActualQuantity)-row.PredictedQuantity, row.QuantityError, 1e-9)
		assert.InDelta(t, row.ActualRevenue-row.PredictedRevenue, row.RevenueError, 1e-9)
	}
}

func TestBuildReportRequiresBothModels(t *testing.T) {
	quantityModel, revenueModel, split := trainedModels(t)

	_, err := forecast.BuildReport(nil, revenueModel, split)
	assert.ErrorIs(t, err, domain.ErrModelNotTrained)

	_, err = forecast.BuildReport(quantityModel, nil, split)
	assert.ErrorIs(t, err, domain.ErrModelNotTrained)
}

func TestReportCSVBytes(t *testing.T) {
	quantityModel, revenueModel, split := trainedModels(t)
	report, err := forecast.BuildReport(quantityModel, revenueModel, split)
	require.NoError(t, err)

	data, err := report.CSVBytes()
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(report.Rows)+1)
	assert.Equal(t, forecast.ReportHeaders(), records[0])
	assert.Len(t, records[1], 7)
}

func TestReportWriteCSVFile(t *testing.T) {
	quantityModel, revenueModel, split := trainedModels(t)
	report, err := forecast.BuildReport(quantityModel, revenueModel, split)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "predictions_report.csv")
	require.NoError(t, report.WriteCSVFile(path))

	assert.FileExists(t, path)
}

func TestReportWriteParquet(t *testing.T) {
	quantityModel, revenueModel, split := trainedModels(t)
	report, err := forecast.BuildReport(quantityModel, revenueModel, split)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "predictions_report.parquet")
	require.NoError(t, report.WriteParquet(path))

	assert.FileExists(t, path)
}
