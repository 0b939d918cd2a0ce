package metrics

// Методы-обёртки под интерфейсы бизнес-метрик потребителей.

func (m *Metrics) HoldPlaced() {
	m.HoldsPlacedTotal.Inc()
}

func (m *Metrics) HoldReleased() {
	m.HoldsReleasedTotal.Inc()
}

func (m *Metrics) BookingCommitted(bookingType string) {
	m.BookingsConfirmedTotal.WithLabelValues(bookingType).Inc()
}

func (m *Metrics) ConflictRejected(reason string) {
	m.ReservationConflictsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RetryOccurred(operation string) {
	m.TransactionRetriesTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) SweepRun(trigger string) {
	m.SweepRunsTotal.WithLabelValues(trigger).Inc()
}

func (m *Metrics) SweepHoldsRemoved(count int) {
	m.SweepHoldsRemovedTotal.Add(float64(count))
}
