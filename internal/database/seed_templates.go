package database

import (
	"fmt"
	"log"
)

// defaultTemplates is the built-in question catalog. Categories mirror the
// interest options offered during onboarding so the selector can surface
// questions close to what the parent cares about.
var defaultTemplates = []struct {
	Category string
	Text     string
}{
	{"음식", "어머니가 가장 좋아하시는 음식은 무엇인가요?"},
	{"음식", "어릴 적 집에서 자주 해 먹던 음식이 있다면 무엇인가요?"},
	{"음식", "요즘 가장 자주 해 드시는 요리는 무엇인가요?"},
	{"추억", "부모님이 처음 만났을 때의 첫인상은 어땠나요?"},
	{"추억", "제가 태어났을 때 기분이 어떠셨나요?"},
	{"추억", "지금까지 가장 행복했던 순간은 언제였나요?"},
	{"음악", "젊었을 때 가장 즐겨 들었던 음악은 무엇인가요?"},
	{"음악", "요즘 즐겨 듣는 노래가 있으신가요?"},
	{"여행", "지금까지 가 본 곳 중 가장 기억에 남는 곳은 어디인가요?"},
	{"여행", "꼭 한번 가 보고 싶은 곳이 있다면 어디인가요?"},
	{"일상", "요즘 하루 중 가장 즐거운 시간은 언제인가요?"},
	{"일상", "요즘 새로 시작해 보고 싶은 일이 있으신가요?"},
	{"가족", "우리 가족에게 바라는 점이 있다면 무엇인가요?"},
	{"가족", "저에게 꼭 해 주고 싶은 말이 있다면 무엇인가요?"},
	{"인생", "인생에서 가장 잘한 결정은 무엇이라고 생각하세요?"},
	{"인생", "다시 스무 살로 돌아간다면 무엇을 해 보고 싶으세요?"},
	{"건강", "요즘 건강을 위해 챙기고 있는 것이 있으신가요?"},
	{"취미", "요즘 푹 빠져 있는 취미가 있으신가요?"},
	{"계절", "올해 가장 기대되는 계절 행사는 무엇인가요?"},
	{"동네", "지금 사는 동네에서 가장 좋아하는 장소는 어디인가요?"},
}

// SeedQuestionTemplates inserts the built-in question catalog if the
// question_templates table is empty. Safe to call on every startup.
func (db *DB) SeedQuestionTemplates() error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM question_templates").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check question template count: %w", err)
	}

	if count > 0 {
		log.Printf("Question template catalog already populated with %d templates", count)
		return nil
	}

	log.Println("Seeding question template catalog...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `INSERT INTO question_templates (category, question_text, is_active, sort_order) VALUES (?, ?, ` +
		db.Dialect.BoolValue(true) + `, ?)`

	for i, tmpl := range defaultTemplates {
		if _, err := tx.Exec(query, tmpl.Category, tmpl.Text, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert question template: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit question templates: %w", err)
	}

	log.Printf("Seeded %d question templates", len(defaultTemplates))
	return nil
}
