// Package models holds the GORM records persisted by the service.
package models

// All lists every model, in dependency order, for auto-migration
func All() []any {
	return []any{&User{}, &Chat{}, &Message{}, &CatalogMeal{}}
}
