package models

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserRole{},
		&Category{},
		&MenuItem{},
		&CartLine{},
		&Order{},
		&OrderItem{},
		&Rating{},
	}
}
