package forecast

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"salesapi/internal/shared/infrastructure"
)

// reportRowParquet structure optimisée pour l'export Parquet
type reportRowParquet struct {
	ProductID         int64   `parquet:"name=product_id, type=INT64"`
	ActualQuantity    int32   `parquet:"name=actual_quantity, type=INT32"`
	PredictedQuantity float64 `parquet:"name=predicted_quantity, type=DOUBLE"`
	ActualRevenue     float64 `parquet:"name=actual_revenue, type=DOUBLE"`
	PredictedRevenue  float64 `parquet:"name=predicted_revenue, type=DOUBLE"`
	QuantityError     float64 `parquet:"name=quantity_error, type=DOUBLE"`
	RevenueError      float64 `parquet:"name=revenue_error, type=DOUBLE"`
}

const parquetBatchSize = 1000

// WriteParquet persiste le rapport au format Parquet. La conversion
// des lignes se fait par lots en parallèle, l'écriture reste
// séquentielle (le writer Parquet n'est pas partageable).
func (r *Report) WriteParquet(path string) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(reportRowParquet), 2)
	if err != nil {
		return err
	}

	converted := make([]reportRowParquet, len(r.Rows))
	err = infrastructure.RunBatches(len(r.Rows), parquetBatchSize, 4, func(start, end int) error {
		for i := start; i < end; i++ {
			row := r.Rows[i]
			converted[i] = reportRowParquet{
				ProductID:         row.ProductID,
				ActualQuantity:    int32(row.ActualQuantity),
				PredictedQuantity: row.PredictedQuantity,
				ActualRevenue:     row.ActualRevenue,
				PredictedRevenue:  row.PredictedRevenue,
				QuantityError:     row.QuantityError,
				RevenueError:      row.RevenueError,
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, row := range converted {
		if err := pw.Write(row); err != nil {
			return err
		}
	}
	return pw.WriteStop()
}
