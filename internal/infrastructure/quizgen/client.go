package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"brainswap/internal/domain/quiz"
)

// Client talks to the external quiz-generation endpoint. The endpoint is a
// black box: the only contract is that a successful response decodes into a
// non-empty list of well-formed questions.
type Client interface {
	GenerateQuiz(ctx context.Context, skill string) ([]quiz.Question, error)
}

var ErrBadResponse = errors.New("quiz generator returned an unusable response")

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type generateRequest struct {
	Skill string `json:"skill"`
}

type generateResponse struct {
	Questions []quiz.Question `json:"questions"`
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) GenerateQuiz(ctx context.Context, skill string) ([]quiz.Question, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil quiz generator client")
	}
	endpoint := c.baseURL + "/api/generate-quiz"

	b, err := json.Marshal(generateRequest{Skill: strings.TrimSpace(skill)})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		c.logger.Printf("[QuizGen] generate error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		return nil, fmt.Errorf("quiz generation failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := quiz.ValidateQuestions(out.Questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return out.Questions, nil
}

var _ Client = (*httpClient)(nil)
