package trivia

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(categories *stubCategoryStore, questions *stubQuestionStore) *http.ServeMux {
	handlers := NewHTTPHandlers(NewService(categories, questions), zerolog.Nop())
	mux := http.NewServeMux()
	handlers.Register(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var payload map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func assertErrorBody(t *testing.T, payload map[string]interface{}, status int, message string) {
	t.Helper()
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, float64(status), payload["error"])
	assert.Equal(t, message, payload["message"])
}

func TestGetCategoriesShape(t *testing.T) {
	mux := newTestMux(seedCategories(), &stubQuestionStore{})

	rec, payload := doRequest(t, mux, http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	categories := payload["categories"].(map[string]interface{})
	assert.Equal(t, "Science", categories["1"])
	assert.Equal(t, "Art", categories["2"])
}

func TestGetQuestionsPage(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(12, 1))

	rec, payload := doRequest(t, mux, http.MethodGet, "/questions?page=1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Len(t, payload["questions"], 10)
	assert.Equal(t, float64(12), payload["total_questions"])
	assert.Contains(t, payload, "current_category")
	assert.Nil(t, payload["current_category"])

	_, page2 := doRequest(t, mux, http.MethodGet, "/questions?page=2", "")
	assert.Len(t, page2["questions"], 2)
}

func TestGetQuestionsEmptyTableIs404(t *testing.T) {
	mux := newTestMux(seedCategories(), &stubQuestionStore{})

	rec, payload := doRequest(t, mux, http.MethodGet, "/questions", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assertErrorBody(t, payload, http.StatusNotFound, "not found")
}

func TestGetQuestionsUnknownCurrentCategoryIs404(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(3, 1))

	rec, payload := doRequest(t, mux, http.MethodGet, "/questions?current_category=99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assertErrorBody(t, payload, http.StatusNotFound, "not found")
}

func TestCreateQuestion(t *testing.T) {
	store := &stubQuestionStore{}
	mux := newTestMux(seedCategories(), store)

	rec, payload := doRequest(t, mux, http.MethodPost, "/questions",
		`{"question":"How do magnets work?","answer":"Magic","difficulty":1,"category":1}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, 1, store.inserts)
}

func TestCreateQuestionMissingAnswerIs400AndNoRow(t *testing.T) {
	store := &stubQuestionStore{}
	mux := newTestMux(seedCategories(), store)

	rec, payload := doRequest(t, mux, http.MethodPost, "/questions",
		`{"question":"How do magnets work?","difficulty":1,"category":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertErrorBody(t, payload, http.StatusBadRequest, "invalid request")
	assert.Zero(t, store.inserts)
}

func TestCreateQuestionUnknownCategoryIs400(t *testing.T) {
	mux := newTestMux(seedCategories(), &stubQuestionStore{})

	rec, _ := doRequest(t, mux, http.MethodPost, "/questions",
		`{"question":"Q","answer":"A","difficulty":1,"category":1000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchQuestions(t *testing.T) {
	store := seedQuestions(0, 1)
	store.nextID++
	store.questions = append(store.questions, Question{
		ID: store.nextID, Question: "How much wood could a woodchuck chuck?",
		Answer: "A lot", Difficulty: 2, Category: 1,
	})
	mux := newTestMux(seedCategories(), store)

	rec, payload := doRequest(t, mux, http.MethodPost, "/questions/search",
		`{"search":"if a WoOdcHuCk"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, payload["questions"], 0)

	rec, payload = doRequest(t, mux, http.MethodPost, "/questions/search",
		`{"search":"a WoOdcHuCk ChUcK"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, payload["questions"], 1)
	assert.Equal(t, float64(1), payload["total_questions"])
	assert.Contains(t, payload, "current_category")
	assert.Nil(t, payload["current_category"])
}

func TestSearchQuestionsMissingFieldIs400(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(1, 1))

	rec, payload := doRequest(t, mux, http.MethodPost, "/questions/search", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertErrorBody(t, payload, http.StatusBadRequest, "invalid request")
}

func TestDeleteQuestion(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(3, 1))

	rec, payload := doRequest(t, mux, http.MethodDelete, "/questions/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])

	rec, payload = doRequest(t, mux, http.MethodDelete, "/questions/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assertErrorBody(t, payload, http.StatusNotFound, "not found")
}

func TestDeleteQuestionNonIntegerIDIs400(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(3, 1))

	rec, _ := doRequest(t, mux, http.MethodDelete, "/questions/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryQuestions(t *testing.T) {
	store := seedQuestions(3, 1)
	mux := newTestMux(seedCategories(), store)

	rec, payload := doRequest(t, mux, http.MethodGet, "/category/1/questions", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, payload["questions"], 3)
	assert.Equal(t, float64(3), payload["total_questions"])
	assert.Nil(t, payload["current_category"])

	rec, payload = doRequest(t, mux, http.MethodGet, "/category/99/questions", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assertErrorBody(t, payload, http.StatusNotFound, "not found")
}

func TestPlayQuizExcludesPreviousQuestions(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(3, 1))

	for i := 0; i < 30; i++ {
		rec, payload := doRequest(t, mux, http.MethodPost, "/quizzes",
			`{"previous_questions":[1,3]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		question := payload["question"].(map[string]interface{})
		assert.Equal(t, float64(2), question["id"])
	}
}

func TestPlayQuizNullWhenExhausted(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(2, 1))

	rec, payload := doRequest(t, mux, http.MethodPost, "/quizzes",
		`{"previous_questions":[1,2],"quiz_category":"all"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Contains(t, payload, "question")
	assert.Nil(t, payload["question"])
}

func TestPlayQuizCategoryVariants(t *testing.T) {
	store := seedQuestions(2, 1)
	store.nextID++
	store.questions = append(store.questions, Question{ID: store.nextID, Question: "Art?", Answer: "Yes", Difficulty: 1, Category: 2})
	mux := newTestMux(seedCategories(), store)

	for _, body := range []string{
		`{"previous_questions":[],"quiz_category":2}`,
		`{"previous_questions":[],"quiz_category":{"id":2,"type":"Art"}}`,
	} {
		rec, payload := doRequest(t, mux, http.MethodPost, "/quizzes", body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		question := payload["question"].(map[string]interface{})
		assert.Equal(t, float64(2), question["category"], body)
	}
}

func TestPlayQuizMalformedBodyIs400(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(2, 1))

	for _, body := range []string{
		`not json`,
		`{"quiz_category":"sports"}`,
	} {
		rec, payload := doRequest(t, mux, http.MethodPost, "/quizzes", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assertErrorBody(t, payload, http.StatusBadRequest, "invalid request")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(seedCategories(), seedQuestions(2, 1))

	cases := []struct {
		method string
		target string
	}{
		{http.MethodPut, "/questions"},
		{http.MethodPost, "/categories"},
		{http.MethodGet, "/quizzes"},
		{http.MethodGet, "/questions/search"},
		{http.MethodPost, "/category/1/questions"},
	}
	for _, c := range cases {
		rec, payload := doRequest(t, mux, c.method, c.target, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, c)
		assertErrorBody(t, payload, http.StatusMethodNotAllowed, "method not allowed")
	}
}
