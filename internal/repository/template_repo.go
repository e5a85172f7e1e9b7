package repository

import (
	"maeumbaedal/internal/database"
	"maeumbaedal/internal/models"
)

type TemplateRepository struct {
	db *database.DB
}

func NewTemplateRepository(db *database.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetActiveTemplates returns the active question catalog ordered by sort_order
func (r *TemplateRepository) GetActiveTemplates() ([]models.QuestionTemplate, error) {
	query := `
		SELECT id, category, question_text, is_active, sort_order, created_at, updated_at
		FROM question_templates
		WHERE is_active = ` + r.db.Dialect.BoolValue(true) + `
		ORDER BY sort_order
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.QuestionTemplate
	for rows.Next() {
		var tmpl models.QuestionTemplate
		if err := rows.Scan(
			&tmpl.ID, &tmpl.Category, &tmpl.QuestionText,
			&tmpl.IsActive, &tmpl.SortOrder, &tmpl.CreatedAt, &tmpl.UpdatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}
