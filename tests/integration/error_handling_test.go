//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"
)

func TestPageBeyondRangeIsNotFound(t *testing.T) {
	status, out := doJSON(t, http.MethodGet, apiURL("/questions?page=1000"), nil)
	expectFailure(t, status, out, http.StatusNotFound, "resource not found")
}

func TestCreateQuestionMissingFields(t *testing.T) {
	status, out := doJSON(t, http.MethodPost, apiURL("/questions"), map[string]string{
		"question":   "hello?",
		"new_answer": "dja",
	})
	expectFailure(t, status, out, http.StatusUnprocessableEntity, "unprocessable")
}

func TestCreateQuestionUnknownCategory(t *testing.T) {
	status, out := doJSON(t, http.MethodPost, apiURL("/questions"), map[string]interface{}{
		"question":   "Orphan?",
		"answer":     "yes",
		"category":   4737,
		"difficulty": 1,
	})
	expectFailure(t, status, out, http.StatusUnprocessableEntity, "unprocessable")
}

func TestSearchWithoutTerm(t *testing.T) {
	status, out := doJSON(t, http.MethodPost, apiURL("/questions/search"), map[string]string{"something": "title"})
	expectFailure(t, status, out, http.StatusUnprocessableEntity, "unprocessable")
}

func TestCategoryWithoutQuestions(t *testing.T) {
	status, out := doJSON(t, http.MethodGet, apiURL("/categories/4737/questions"), nil)
	expectFailure(t, status, out, http.StatusNotFound, "resource not found")
}

func TestDeleteUnknownQuestion(t *testing.T) {
	status, out := doJSON(t, http.MethodDelete, apiURL("/questions/987654321"), nil)
	expectFailure(t, status, out, http.StatusNotFound, "resource not found")
}

func TestMalformedQuizBody(t *testing.T) {
	status, out := doJSON(t, http.MethodPost, apiURL("/quizzes"), "not an object")
	expectFailure(t, status, out, http.StatusBadRequest, "bad request")
}
