package store

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"pantrybot/internal/models"
)

// GormStore implements RecordStore on top of a gorm database handle.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// columnFor maps record field names to database columns.
var columnFor = map[string]string{
	"name":         "name",
	"amount":       "amount",
	"ownerId":      "owner_id",
	"title":        "title",
	"minutesTakes": "minutes_takes",
	"steps":        "steps",
	"ingredients":  "ingredients",
}

func (s *GormStore) Insert(ctx context.Context, collection string, fields map[string]interface{}) (uint, error) {
	switch collection {
	case CollectionItems:
		item := models.PantryItem{}
		if v, ok := fields["name"].(string); ok {
			item.Name = v
		}
		if v, ok := toFloat(fields["amount"]); ok {
			item.Amount = v
		}
		if v, ok := fields["ownerId"].(string); ok {
			item.OwnerID = v
		}
		if err := s.db.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	case CollectionRecipes:
		recipe := models.Recipe{}
		if v, ok := fields["title"].(string); ok {
			recipe.Title = v
		}
		if v, ok := fields["minutesTakes"].(int); ok {
			recipe.MinutesTakes = v
		}
		if v, ok := fields["steps"].(string); ok {
			recipe.Steps = v
		}
		if v, ok := fields["ingredients"].([]string); ok {
			recipe.Ingredients = models.StringSlice(v)
		}
		if v, ok := fields["ownerId"].(string); ok {
			recipe.OwnerID = v
		}
		if err := s.db.Create(&recipe).Error; err != nil {
			return 0, err
		}
		return recipe.ID, nil
	default:
		return 0, fmt.Errorf("unknown collection %q", collection)
	}
}

func (s *GormStore) Query(ctx context.Context, collection string, filters []Filter) ([]Record, error) {
	q := s.db
	for _, f := range filters {
		column, ok := columnFor[f.Field]
		if !ok {
			return nil, fmt.Errorf("unknown field %q in filter", f.Field)
		}
		q = q.Where(fmt.Sprintf("%s = ?", column), f.Value)
	}

	switch collection {
	case CollectionItems:
		var items []models.PantryItem
		if err := q.Order("id").Find(&items).Error; err != nil {
			return nil, err
		}
		records := make([]Record, len(items))
		for i, item := range items {
			records[i] = Record{
				Ref: Ref{Collection: collection, ID: item.ID},
				Fields: map[string]interface{}{
					"name":    item.Name,
					"amount":  item.Amount,
					"ownerId": item.OwnerID,
				},
			}
		}
		return records, nil
	case CollectionRecipes:
		var recipes []models.Recipe
		if err := q.Order("id").Find(&recipes).Error; err != nil {
			return nil, err
		}
		records := make([]Record, len(recipes))
		for i, recipe := range recipes {
			records[i] = Record{
				Ref: Ref{Collection: collection, ID: recipe.ID},
				Fields: map[string]interface{}{
					"title":        recipe.Title,
					"minutesTakes": recipe.MinutesTakes,
					"steps":        recipe.Steps,
					"ingredients":  []string(recipe.Ingredients),
					"ownerId":      recipe.OwnerID,
				},
			}
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}

func (s *GormStore) Update(ctx context.Context, ref Ref, fields map[string]interface{}) error {
	model, err := modelFor(ref.Collection)
	if err != nil {
		return err
	}

	updates := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		column, ok := columnFor[field]
		if !ok {
			return fmt.Errorf("unknown field %q in update", field)
		}
		updates[column] = value
	}

	result := s.db.Model(model).Where("id = ?", ref.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, ref Ref) error {
	model, err := modelFor(ref.Collection)
	if err != nil {
		return err
	}

	// Hard delete: removal is permanent and unrecoverable.
	result := s.db.Unscoped().Where("id = ?", ref.ID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func modelFor(collection string) (interface{}, error) {
	switch collection {
	case CollectionItems:
		return &models.PantryItem{}, nil
	case CollectionRecipes:
		return &models.Recipe{}, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
