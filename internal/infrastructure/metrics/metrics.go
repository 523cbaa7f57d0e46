package metrics

import "github.com/prometheus/client_golang/prometheus"

// StockMetrics contadores operacionales del motor de stock.
// Todos los métodos toleran receptor nil (tests y arranques sin registro).
type StockMetrics struct {
	movimientos *prometheus.CounterVec
	importFilas *prometheus.CounterVec
}

// NewStockMetrics registra los contadores en el Registerer indicado.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	movimientos := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_movimientos_total",
		Help: "Movimientos de inventario registrados, por tipo.",
	}, []string{"tipo"})
	importFilas := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_import_filas_total",
		Help: "Filas procesadas por la importación masiva, por resultado.",
	}, []string{"resultado"})
	reg.MustRegister(movimientos, importFilas)
	return &StockMetrics{movimientos: movimientos, importFilas: importFilas}
}

// IncMovimiento incrementa el contador del tipo de movimiento dado.
func (m *StockMetrics) IncMovimiento(tipo string) {
	if m == nil || m.movimientos == nil {
		return
	}
	m.movimientos.WithLabelValues(tipo).Inc()
}

// IncImportFila incrementa el contador de filas importadas ("ok" o "error").
func (m *StockMetrics) IncImportFila(resultado string) {
	if m == nil || m.importFilas == nil {
		return
	}
	m.importFilas.WithLabelValues(resultado).Inc()
}
