package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

// CategoryStore provides read access to categories.
type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int) (Category, error)
}

// QuestionStore provides persistence for questions.
type QuestionStore interface {
	List(ctx context.Context, filter QuestionFilter) ([]Question, error)
	CountAll(ctx context.Context) (int, error)
	Insert(ctx context.Context, q Question) (Question, error)
	Delete(ctx context.Context, id int) error
}

// Service implements the query layer and the quiz selector over the storage
// adapters. It holds no state of its own; every call is independent.
type Service struct {
	categories CategoryStore
	questions  QuestionStore
}

func NewService(categories CategoryStore, questions QuestionStore) *Service {
	return &Service{categories: categories, questions: questions}
}

// Categories returns all categories keyed by id.
func (s *Service) Categories(ctx context.Context) (map[int]string, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make(map[int]string, len(cats))
	for _, c := range cats {
		out[c.ID] = c.Type
	}
	return out, nil
}

// QuestionsPage returns the 1-based page of questions in insertion order,
// optionally narrowed by category and a case-insensitive search term.
// TotalQuestions is the unfiltered table count. An empty table is ErrNotFound;
// a page past the end is an empty page.
func (s *Service) QuestionsPage(ctx context.Context, page, currentCategory int, search string) (QuestionPage, error) {
	total, err := s.questions.CountAll(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("count questions: %w", err)
	}
	if total == 0 {
		return QuestionPage{}, ErrNotFound
	}

	var current *int
	if currentCategory > 0 {
		if _, err := s.categories.Get(ctx, currentCategory); err != nil {
			return QuestionPage{}, fmt.Errorf("get category %d: %w", currentCategory, err)
		}
		current = &currentCategory
	}

	if page < 1 {
		page = 1
	}
	questions, err := s.questions.List(ctx, QuestionFilter{
		CategoryID: currentCategory,
		Search:     search,
		Offset:     (page - 1) * QuestionsPerPage,
		Limit:      QuestionsPerPage,
	})
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       nonNil(questions),
		TotalQuestions:  total,
		Categories:      categories,
		CurrentCategory: current,
	}, nil
}

// SearchQuestions returns every question whose text contains term,
// case-insensitively, together with the match count.
func (s *Service) SearchQuestions(ctx context.Context, term string) (QuestionPage, error) {
	questions, err := s.questions.List(ctx, QuestionFilter{Search: term})
	if err != nil {
		return QuestionPage{}, fmt.Errorf("search questions: %w", err)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:      nonNil(questions),
		TotalQuestions: len(questions),
		Categories:     categories,
	}, nil
}

// QuestionsByCategory returns all questions in one category, unpaginated.
// ErrNotFound when the category id is unknown.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) (QuestionPage, error) {
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		return QuestionPage{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}

	questions, err := s.questions.List(ctx, QuestionFilter{CategoryID: categoryID})
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions for category %d: %w", categoryID, err)
	}

	return QuestionPage{
		Questions:      nonNil(questions),
		TotalQuestions: len(questions),
	}, nil
}

// CreateQuestion validates the payload and inserts a new question. Missing or
// non-positive fields and unknown categories are ErrInvalidInput.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (Question, error) {
	switch {
	case req.Question == nil || *req.Question == "":
		return Question{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	case req.Answer == nil || *req.Answer == "":
		return Question{}, fmt.Errorf("%w: answer is required", ErrInvalidInput)
	case req.Difficulty == nil || *req.Difficulty <= 0:
		return Question{}, fmt.Errorf("%w: difficulty must be a positive integer", ErrInvalidInput)
	case req.Category == nil || *req.Category <= 0:
		return Question{}, fmt.Errorf("%w: category must be a positive integer", ErrInvalidInput)
	}

	if _, err := s.categories.Get(ctx, *req.Category); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Question{}, fmt.Errorf("%w: unknown category %d", ErrInvalidInput, *req.Category)
		}
		return Question{}, fmt.Errorf("get category %d: %w", *req.Category, err)
	}

	created, err := s.questions.Insert(ctx, Question{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Difficulty: *req.Difficulty,
		Category:   *req.Category,
	})
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return created, nil
}

// DeleteQuestion removes a question by id. ErrNotFound when it does not exist.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

// NextQuizQuestion picks one question uniformly at random from the scope
// (all questions, or one category when categoryID > 0) excluding previousIDs.
// A nil result with nil error means the scope is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, categoryID int, previousIDs []int) (*Question, error) {
	questions, err := s.questions.List(ctx, QuestionFilter{CategoryID: categoryID})
	if err != nil {
		return nil, fmt.Errorf("list quiz candidates: %w", err)
	}

	seen := make(map[int]struct{}, len(previousIDs))
	for _, id := range previousIDs {
		seen[id] = struct{}{}
	}

	candidates := questions[:0:0]
	for _, q := range questions {
		if _, ok := seen[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	pick := candidates[rand.IntN(len(candidates))]
	return &pick, nil
}

func nonNil(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
