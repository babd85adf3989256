package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

// DefaultBaseURL targets the official OpenAI API. Any server speaking
// the chat-completions protocol works (Azure, local gateways).
const DefaultBaseURL = "https://api.openai.com/v1"

const defaultModel = "gpt-4o-mini"

// Client implements ports.Interviewer and ports.Reporter against an
// OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	batchSize  int

	// store, when set, supplies session context (job description,
	// question text) for scoring and report prompts. Reads only.
	store ports.SessionStore
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL points the client at a different chat-completions server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient injects a custom HTTP client (timeouts, proxies, tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBatchSize sets how many questions one GenerateQuestions call asks for.
func WithBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithSessionStore lets the client read stored sessions to build
// context-aware scoring prompts.
func WithSessionStore(store ports.SessionStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// NewClient creates an interviewer/reporter client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   defaultModel,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		batchSize: domain.DefaultQuestionCap,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// chat performs one completion round-trip and returns the content of the
// first choice, stripped of markdown fences.
func (c *Client) chat(ctx context.Context, messages []chatMessage, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat API")
	}

	return stripFences(parsed.Choices[0].Message.Content), nil
}

// stripFences removes markdown code fences models wrap JSON output in.
func stripFences(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	return strings.TrimSpace(response)
}

const generatePrompt = `You are an experienced technical interviewer. Generate exactly %d interview questions for a candidate applying to the following position.

JOB DESCRIPTION:
%s

Order the questions from warm-up to in-depth. Return ONLY a JSON object with this exact structure, no markdown, no explanation:
{"questions": [{"number": 1, "text": "<the question>"}]}`

// GenerateQuestions asks the model for the opening question batch.
func (c *Client) GenerateQuestions(ctx context.Context, jobDescription string) ([]domain.Question, error) {
	content, err := c.chat(ctx, []chatMessage{
		{Role: "user", Content: fmt.Sprintf(generatePrompt, c.batchSize, jobDescription)},
	}, 0.7)
	if err != nil {
		return nil, err
	}

	var out struct {
		Questions []domain.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("error parsing question batch: %w", err)
	}
	return out.Questions, nil
}

const scorePrompt = `You are an experienced technical interviewer scoring one answer in a mock interview.
%s
QUESTION %d: %s

CANDIDATE ANSWER:
%s

Score the answer from 0 to 10 and give short, actionable feedback (2-3 sentences). Return ONLY a JSON object with this exact structure, no markdown, no explanation:
{"score": <0-10>, "feedback": "<feedback>"}`

// ScoreAnswer evaluates one answer. When a session store is configured,
// the stored question text and job description are included in the
// prompt; the last-question decision is left to the engine's counting
// unless the stored session shows an exhausted question bank.
func (c *Client) ScoreAnswer(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Evaluation, error) {
	jobContext := ""
	questionText := fmt.Sprintf("(question #%d of the interview)", questionNumber)
	isLast := false

	if c.store != nil {
		session, err := c.store.Load(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("error loading session context: %w", err)
		}
		jobContext = "JOB DESCRIPTION:\n" + session.JobDescription + "\n"
		for i := range session.Turns {
			if session.Turns[i].QuestionNumber == questionNumber {
				questionText = session.Turns[i].QuestionText
			}
		}
		isLast = len(session.QuestionBank) == 0 && questionNumber >= len(session.Turns)
	}

	content, err := c.chat(ctx, []chatMessage{
		{Role: "user", Content: fmt.Sprintf(scorePrompt, jobContext, questionNumber, questionText, answer)},
	}, 0.2)
	if err != nil {
		return nil, err
	}

	var out struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("error parsing evaluation: %w", err)
	}

	return &domain.Evaluation{
		Score:          out.Score,
		Feedback:       out.Feedback,
		IsLastQuestion: isLast,
	}, nil
}

const reportPrompt = `You are an experienced interview coach. The candidate just finished a mock interview for this position:

%s

TRANSCRIPT:
%s

Write a final report: overall impression, strongest answers, weakest answers, and three concrete things to practice. Plain text, no markdown headings, at most 250 words.`

// GenerateReport produces the closing summary for a fully scored session.
func (c *Client) GenerateReport(ctx context.Context, session *domain.Session) (string, error) {
	var transcript strings.Builder
	for i := range session.Turns {
		t := &session.Turns[i]
		fmt.Fprintf(&transcript, "Q%d: %s\n", t.QuestionNumber, t.QuestionText)
		if t.CandidateAnswer != nil {
			fmt.Fprintf(&transcript, "A%d: %s\n", t.QuestionNumber, *t.CandidateAnswer)
		}
		if t.Score != nil {
			fmt.Fprintf(&transcript, "Score: %.1f\n", *t.Score)
		}
	}

	return c.chat(ctx, []chatMessage{
		{Role: "user", Content: fmt.Sprintf(reportPrompt, session.JobDescription, transcript.String())},
	}, 0.4)
}

// Interface guards.
var (
	_ ports.Interviewer = (*Client)(nil)
	_ ports.Reporter    = (*Client)(nil)
)
