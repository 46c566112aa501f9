package summary

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
)

const systemPrompt = "You are a financial analyst providing concise, actionable insights " +
	"for traders and investors. Format your response in markdown with clear sections."

// OpenAISummarizer generates writeups with an LLM, falling back to the
// template strategy when the API call fails.
type OpenAISummarizer struct {
	client   *openai.Client
	model    openai.ChatModel
	fallback Summarizer
	logger   *log.Logger
}

// OpenAISummarizerOptions configures an OpenAISummarizer.
type OpenAISummarizerOptions struct {
	APIKey string
	Model  openai.ChatModel // default: gpt-4o-mini
	Logger *log.Logger
}

// NewOpenAISummarizer creates an LLM-backed summarizer.
func NewOpenAISummarizer(opts OpenAISummarizerOptions) *OpenAISummarizer {
	model := opts.Model
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	client := openai.NewClient(option.WithAPIKey(opts.APIKey))
	return &OpenAISummarizer{
		client:   &client,
		model:    model,
		fallback: NewTemplateSummarizer(),
		logger:   logger,
	}
}

// Summarize asks the model for a writeup. Any API failure degrades to
// the template summarizer rather than surfacing an error.
func (s *OpenAISummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		s.logger.Printf("[summary] openai call failed, using template: %v", err)
		return s.fallback.Summarize(ctx, req)
	}
	if len(resp.Choices) == 0 {
		s.logger.Println("[summary] openai returned no choices, using template")
		return s.fallback.Summarize(ctx, req)
	}
	return resp.Choices[0].Message.Content, nil
}

func buildPrompt(req Request) (string, error) {
	switch {
	case req.Kind == domain.KindDeal && req.Filing != nil:
		return fmt.Sprintf(
			"Analyze this private-placement filing and provide a comprehensive summary:\n"+
				"Company: %s\nAmount Raised: $%s\nSector: %s\n\n"+
				"Include: key highlights, market impact, risk factors, investment thesis, and comparable deals.",
			req.Filing.CompanyName, req.Filing.AmountRaised, req.Filing.Sector), nil

	case req.Kind == domain.KindAlert && req.Alert != nil:
		return fmt.Sprintf(
			"Analyze this whale transaction and provide trading insights:\n"+
				"Amount: %s %s\nFrom: %s\nTo: %s\n\n"+
				"Include: entity analysis, historical behavior, market impact prediction, trading implications, and risk assessment.",
			req.Alert.Amount, req.Alert.TokenSymbol, req.Alert.SenderLabel, req.Alert.ReceiverLabel), nil

	case req.Kind == domain.KindNews && req.Article != nil:
		return fmt.Sprintf(
			"Analyze this crypto news and provide market insights:\n"+
				"Title: %s\nSummary: %s\nSentiment: %s\nSource: %s\n\n"+
				"Include: executive summary, key takeaways, market impact, trading implications, and recommended actions.",
			req.Article.Title, req.Article.Summary, req.Article.Sentiment, req.Article.Source), nil
	}
	return "", fmt.Errorf("summary request needs the %s record", req.Kind)
}

var _ Summarizer = (*OpenAISummarizer)(nil)
