package forecast

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"salesapi/internal/shared/domain"
)

// ReportRow est une ligne du rapport de prévision: valeurs observées
// et prédites des deux cibles pour une ligne de la partition
// d'évaluation, avec les résidus signés (observé - prédit)
type ReportRow struct {
	ProductID         int64
	ActualQuantity    int
	PredictedQuantity float64
	ActualRevenue     float64
	PredictedRevenue  float64
	QuantityError     float64
	RevenueError      float64
}

// Report est le rapport de comparaison en mémoire
type Report struct {
	Rows []ReportRow
}

// ReportHeaders retourne les en-têtes du fichier de rapport
func ReportHeaders() []string {
	return []string{
		"product_id",
		"actual_quantity",
		"predicted_quantity",
		"actual_revenue",
		"predicted_revenue",
		"quantity_error",
		"revenue_error",
	}
}

// BuildReport construit le rapport à partir des deux modèles
// entraînés. Échoue avec ErrModelNotTrained si l'un des deux manque.
func BuildReport(quantityModel, revenueModel *TrainedModel, split Split) (*Report, error) {
	if quantityModel == nil || revenueModel == nil {
		return nil, domain.ErrModelNotTrained
	}

	report := &Report{Rows: make([]ReportRow, 0, len(split.Test))}
	for _, o := range split.Test {
		predictedQty := quantityModel.Predict(o)
		predictedRev := revenueModel.Predict(o)
		report.Rows = append(report.Rows, ReportRow{
			ProductID:         o.ProductID,
			ActualQuantity:    o.Quantity,
			PredictedQuantity: predictedQty,
			ActualRevenue:     o.Revenue,
			PredictedRevenue:  predictedRev,
			QuantityError:     float64(o.Quantity) - predictedQty,
			RevenueError:      o.Revenue - predictedRev,
		})
	}
	return report, nil
}

// toCSVRow convertit une ligne en champs texte
func (r ReportRow) toCSVRow() []string {
	return []string{
		strconv.FormatInt(r.ProductID, 10),
		strconv.Itoa(r.ActualQuantity),
		fmt.Sprintf("%.4f", r.PredictedQuantity),
		fmt.Sprintf("%.2f", r.ActualRevenue),
		fmt.Sprintf("%.4f", r.PredictedRevenue),
		fmt.Sprintf("%.4f", r.QuantityError),
		fmt.Sprintf("%.4f", r.RevenueError),
	}
}

// CSVBytes rend le rapport en CSV dans un buffer mémoire
func (r *Report) CSVBytes() ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 64*1024))
	writer := csv.NewWriter(buffer)

	if err := writer.Write(ReportHeaders()); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		if err := writer.Write(row.toCSVRow()); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// WriteCSVFile persiste le rapport à l'emplacement donné
func (r *Report) WriteCSVFile(path string) error {
	data, err := r.CSVBytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
