package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxOpenTDBAmount is the largest batch the Open Trivia DB serves per call.
const maxOpenTDBAmount = 50

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type OpenTDBQuestion struct {
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	IncorrectAnswer []string `json:"incorrect_answers"`
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []OpenTDBQuestion `json:"results"`
}

func (c *OpenTDBClient) Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error) {
	values := url.Values{}
	values.Set("amount", fmt.Sprint(amount))
	if difficulty != "" {
		values.Set("difficulty", difficulty)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api.php?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}
	return payload.Results, nil
}

// OpenTDBSource imports a batch of Open Trivia DB questions.
type OpenTDBSource struct {
	client     *OpenTDBClient
	amount     int
	difficulty string
}

func NewOpenTDBSource(client *OpenTDBClient, amount int, difficulty string) *OpenTDBSource {
	if amount <= 0 {
		amount = 10
	}
	if amount > maxOpenTDBAmount {
		amount = maxOpenTDBAmount
	}
	return &OpenTDBSource{client: client, amount: amount, difficulty: difficulty}
}

func (s *OpenTDBSource) Name() string { return "opentdb" }

func (s *OpenTDBSource) Rows(ctx context.Context) ([]Row, error) {
	results, err := s.client.Fetch(ctx, s.amount, s.difficulty)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(results))
	for i, q := range results {
		rows = append(rows, Row{
			Line:       i + 1,
			Question:   html.UnescapeString(q.Question),
			Answer:     html.UnescapeString(q.CorrectAnswer),
			Category:   html.UnescapeString(q.Category),
			Difficulty: difficultyScore(q.Difficulty),
		})
	}
	return rows, nil
}

// difficultyScore maps the Open Trivia DB levels onto the 1-5 scale.
func difficultyScore(level string) string {
	switch strings.ToLower(level) {
	case "easy":
		return "1"
	case "medium":
		return "3"
	case "hard":
		return "5"
	default:
		return level
	}
}
