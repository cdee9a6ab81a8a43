package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// QuestionsPerPage is the fixed page size for question listings.
const QuestionsPerPage = 10

var (
	// ErrNotFound signals a missing question, category, or an empty dataset.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a request with missing or unusable fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Category is a named grouping for questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is a single trivia prompt/answer pair. Category holds the id of
// the owning Category; difficulty is unbounded above.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// QuestionFilter narrows question listings. Zero values mean "no filter";
// Limit <= 0 disables pagination.
type QuestionFilter struct {
	CategoryID int
	Search     string
	Offset     int
	Limit      int
}

// CreateQuestionRequest carries the POST /questions payload. Pointer fields
// distinguish absent from zero so validation can reject partial bodies.
type CreateQuestionRequest struct {
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Difficulty *int    `json:"difficulty"`
	Category   *int    `json:"category"`
}

// SearchRequest carries the POST /questions/search payload.
type SearchRequest struct {
	Search *string `json:"search"`
}

// QuizRequest carries the POST /quizzes payload.
type QuizRequest struct {
	PreviousQuestions []int        `json:"previous_questions"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

// QuizCategory scopes a quiz round. The frontend sends it as a bare id, an
// object with an "id" field, or the string "all"; id 0 means all categories.
type QuizCategory struct {
	ID int
}

func (c *QuizCategory) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		c.ID = 0
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "all" || s == "" {
			c.ID = 0
			return nil
		}
		return fmt.Errorf("quiz_category: unknown value %q", s)
	case '{':
		var obj struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.ID = obj.ID
		return nil
	default:
		return json.Unmarshal(data, &c.ID)
	}
}

// QuestionPage is the result of a paginated or filtered question listing.
type QuestionPage struct {
	Questions       []Question
	TotalQuestions  int
	Categories      map[int]string
	CurrentCategory *int
}
