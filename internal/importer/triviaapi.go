package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TriviaAPIClient integrates with the-trivia-api.com (optional key in TRIVIA_API_KEY).
type TriviaAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTriviaAPIClient(baseURL, apiKey string, httpClient *http.Client) *TriviaAPIClient {
	if baseURL == "" {
		baseURL = "https://the-trivia-api.com/api"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &TriviaAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type TriviaAPIQuestion struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Question   string   `json:"question"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Correct    string   `json:"correctAnswer"`
	Incorrect  []string `json:"incorrectAnswers"`
}

func (c *TriviaAPIClient) Fetch(ctx context.Context, amount int, difficulty string) ([]TriviaAPIQuestion, error) {
	values := url.Values{}
	values.Set("limit", fmt.Sprint(amount))
	if difficulty != "" {
		values.Set("difficulty", difficulty)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/questions?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("triviaapi non-200: %d", resp.StatusCode)
	}

	var payload []TriviaAPIQuestion
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// triviaAPICategories maps the-trivia-api.com categories onto the seeded types.
var triviaAPICategories = map[string]string{
	"arts & literature": "Art",
	"film & tv":         "Entertainment",
	"music":             "Entertainment",
	"sport & leisure":   "Sports",
}

// TriviaAPISource imports a batch of the-trivia-api.com questions.
type TriviaAPISource struct {
	client     *TriviaAPIClient
	amount     int
	difficulty string
}

func NewTriviaAPISource(client *TriviaAPIClient, amount int, difficulty string) *TriviaAPISource {
	if amount <= 0 {
		amount = 10
	}
	return &TriviaAPISource{client: client, amount: amount, difficulty: difficulty}
}

func (s *TriviaAPISource) Name() string { return "triviaapi" }

func (s *TriviaAPISource) Rows(ctx context.Context) ([]Row, error) {
	results, err := s.client.Fetch(ctx, s.amount, s.difficulty)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(results))
	for i, q := range results {
		category := q.Category
		if mapped, ok := triviaAPICategories[strings.ToLower(category)]; ok {
			category = mapped
		}
		rows = append(rows, Row{
			Line:       i + 1,
			Question:   q.Question,
			Answer:     q.Correct,
			Category:   category,
			Difficulty: difficultyScore(q.Difficulty),
		})
	}
	return rows, nil
}
