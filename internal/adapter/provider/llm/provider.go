// Package llm implements the study content generator on the Anthropic
// Messages API. Every response is parsed as untrusted JSON; anything that
// cannot be decoded becomes an error for the caller to treat as transient.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/vocabcoach/internal/config"
	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// messenger is the slice of the SDK's MessageService the provider uses.
type messenger interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Provider generates vocabulary, passages, quizzes and feedback with Claude.
type Provider struct {
	msgs      messenger
	model     string
	maxTokens int64
	timeout   time.Duration
	log       *slog.Logger
}

// New creates a Provider from LLMConfig. Extra request options (base URL,
// retries) are passed to the SDK client.
func New(logger *slog.Logger, cfg config.LLMConfig, opts ...option.RequestOption) *Provider {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client := anthropic.NewClient(opts...)
	return newWithMessenger(logger, cfg, &client.Messages)
}

func newWithMessenger(logger *slog.Logger, cfg config.LLMConfig, msgs messenger) *Provider {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Provider{
		msgs:      msgs,
		model:     cfg.Model,
		maxTokens: maxTokens,
		timeout:   cfg.Timeout,
		log:       logger.With("adapter", "llm"),
	}
}

// ---------------------------------------------------------------------------
// Generator operations
// ---------------------------------------------------------------------------

// GenerateVocabularyBatch asks for count new words on topic at level.
func (p *Provider) GenerateVocabularyBatch(ctx context.Context, topic string, count int, level string) ([]domain.VocabularyRecord, error) {
	var docs []wordDoc
	if err := p.completeJSON(ctx, batchPrompt(topic, count, level), &docs); err != nil {
		return nil, fmt.Errorf("llm: vocabulary batch: %w", err)
	}
	out := make([]domain.VocabularyRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// GenerateWord analyzes one learner-chosen word.
func (p *Provider) GenerateWord(ctx context.Context, word string, level string) (domain.VocabularyRecord, error) {
	var doc wordDoc
	if err := p.completeJSON(ctx, wordPrompt(word, level), &doc); err != nil {
		return domain.VocabularyRecord{}, fmt.Errorf("llm: analyze word %q: %w", word, err)
	}
	return doc.toDomain(), nil
}

// GenerateReadingPassages writes short texts that use words.
func (p *Provider) GenerateReadingPassages(ctx context.Context, words []string, level string) ([]domain.Passage, error) {
	var docs []passageDoc
	if err := p.completeJSON(ctx, passagePrompt(words, level), &docs); err != nil {
		return nil, fmt.Errorf("llm: reading passages: %w", err)
	}
	out := make([]domain.Passage, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// GenerateQuiz builds questions over records. Questions reference records by
// id so results can be tied back to words.
func (p *Provider) GenerateQuiz(ctx context.Context, records []domain.VocabularyRecord) ([]domain.QuizQuestion, error) {
	var docs []quizDoc
	if err := p.completeJSON(ctx, quizPrompt(records), &docs); err != nil {
		return nil, fmt.Errorf("llm: quiz: %w", err)
	}
	out := make([]domain.QuizQuestion, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EvaluateSentence grades a sentence the learner wrote with word.
func (p *Provider) EvaluateSentence(ctx context.Context, word, sentence string) (domain.SentenceEvaluation, error) {
	var doc evaluationDoc
	if err := p.completeJSON(ctx, evaluationPrompt(word, sentence), &doc); err != nil {
		return domain.SentenceEvaluation{}, fmt.Errorf("llm: evaluate sentence: %w", err)
	}
	return domain.SentenceEvaluation{
		Score:       doc.Score,
		Feedback:    doc.Feedback,
		Correction:  doc.Correction,
		Translation: doc.Translation,
	}, nil
}

// MotivationalMessage writes one encouraging line from the learner's stats.
func (p *Provider) MotivationalMessage(ctx context.Context, stats domain.StudyStats) (string, error) {
	text, err := p.complete(ctx, motivationPrompt(stats))
	if err != nil {
		return "", fmt.Errorf("llm: motivation: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ---------------------------------------------------------------------------
// Transport helpers
// ---------------------------------------------------------------------------

func (p *Provider) complete(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	msg, err := p.msgs.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		p.log.WarnContext(ctx, "llm call failed", slog.String("error", err.Error()))
		return "", err
	}
	p.log.DebugContext(ctx, "llm call done", slog.Duration("took", time.Since(start)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens))

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("empty response")
	}
	return b.String(), nil
}

func (p *Provider) completeJSON(ctx context.Context, prompt string, dst any) error {
	text, err := p.complete(ctx, prompt)
	if err != nil {
		return err
	}
	raw, err := extractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// extractJSON returns the outermost JSON array or object in s, dropping any
// prose or markdown fences around it.
func extractJSON(s string) (string, error) {
	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return "", errors.New("no JSON found in response")
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return "", errors.New("no JSON found in response")
	}
	return s[start : end+1], nil
}
