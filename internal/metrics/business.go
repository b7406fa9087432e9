package metrics

// IncrementTemplateCreated increments template creation counter
func (m *Metrics) IncrementTemplateCreated() {
	m.safeExecute("IncrementTemplateCreated", func() {
		m.TemplateCreatedTotal.Inc()
	})
}

// IncrementItemCreated increments item creation counter
func (m *Metrics) IncrementItemCreated() {
	m.safeExecute("IncrementItemCreated", func() {
		m.ItemCreatedTotal.Inc()
	})
}

// SetTemplatesTotal sets total templates gauge
func (m *Metrics) SetTemplatesTotal(count int64) {
	m.safeExecute("SetTemplatesTotal", func() {
		m.TemplatesTotal.Set(float64(count))
	})
}

// SetItemsTotal sets total items gauge
func (m *Metrics) SetItemsTotal(count int64) {
	m.safeExecute("SetItemsTotal", func() {
		m.ItemsTotal.Set(float64(count))
	})
}
