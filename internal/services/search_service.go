package services

import (
	"context"
	"fmt"

	"socialgram/internal/models"

	"gorm.io/gorm"
)

// SearchField enumerates the user columns that may be filtered on. The
// filter clause is assembled from this allow-list only; request data never
// reaches the SQL text.
type SearchField string

const (
	FieldUsername    SearchField = "username"
	FieldDisplayName SearchField = "display_name"
	FieldLocationID  SearchField = "location_id"
	FieldBirthday    SearchField = "birthday"
)

var searchColumns = map[SearchField]string{
	FieldUsername:    "username",
	FieldDisplayName: "display_name",
	FieldLocationID:  "location_id",
	FieldBirthday:    "birthday",
}

// Connector joins two adjacent search conditions.
type Connector string

const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

// SearchCondition is one column-equals-value filter.
type SearchCondition struct {
	Field SearchField
	Value any
}

// SearchResult is one matching user.
type SearchResult struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// SearchService runs filtered user searches
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new SearchService
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search filters users by the given conditions, combined left to right
// with the given connectors. connectors must hold len(conditions)-1
// entries. An unknown field or connector is rejected before any query runs.
func (s *SearchService) Search(ctx context.Context, conditions []SearchCondition, connectors []Connector) ([]SearchResult, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("at least one search condition is required")
	}
	if len(connectors) != len(conditions)-1 {
		return nil, fmt.Errorf("expected %d connectors, got %d", len(conditions)-1, len(connectors))
	}

	query := s.db.WithContext(ctx).Model(&models.User{}).Select("username", "id")
	for i, condition := range conditions {
		column, ok := searchColumns[condition.Field]
		if !ok {
			return nil, fmt.Errorf("unknown search field %q", condition.Field)
		}

		clause := column + " = ?"
		if i == 0 {
			query = query.Where(clause, condition.Value)
			continue
		}
		switch connectors[i-1] {
		case ConnectorAnd:
			query = query.Where(clause, condition.Value)
		case ConnectorOr:
			query = query.Or(clause, condition.Value)
		default:
			return nil, fmt.Errorf("unknown connector %q", connectors[i-1])
		}
	}

	var results []SearchResult
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
