package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/paperly/paperly/internal/ai"
	"github.com/paperly/paperly/internal/config"
	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type AIService struct {
	provider ai.IProvider
	papers   *repo.PaperRepo
	cfg      config.AIConfig
}

func NewAIService(provider ai.IProvider, papers *repo.PaperRepo, cfg config.AIConfig) *AIService {
	return &AIService{provider: provider, papers: papers, cfg: cfg}
}

const analyzePrompt = `You are an assistant that analyzes research papers.
Read the paper below and respond with a single JSON object, no prose, shaped as:
{"summary": "<3-5 sentence summary>", "key_findings": ["<finding>", ...], "gaps": ["<open problem or limitation>", ...]}

Title: %s

Paper content:
%s`

type analysisResult struct {
	Summary     string   `json:"summary"`
	KeyFindings []string `json:"key_findings"`
	Gaps        []string `json:"gaps"`
}

// Analyze runs the model over the paper text and persists the structured
// result onto the paper row. The input is truncated to the configured limit
// before prompting so oversized PDFs cannot blow the provider's context.
func (s *AIService) Analyze(ctx context.Context, userID, paperID, text string) (*model.Paper, error) {
	if s.provider == nil {
		return nil, appErr.ErrAIUnavailable
	}
	paper, err := s.papers.GetByID(ctx, userID, paperID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		text = paper.Abstract
	}
	if strings.TrimSpace(text) == "" {
		return nil, appErr.ErrInvalid
	}
	text = truncateInput(text, s.cfg.MaxInputChars)
	prompt := fmt.Sprintf(analyzePrompt, paper.Title, text)

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.provider.Generate(ctx, s.cfg.Model, prompt)
	if err != nil {
		// one retry covers transient provider hiccups, anything persistent
		// surfaces to the caller
		logutil.GetLogger(ctx).Warn("analyze generation failed, retrying",
			zap.String("paper_id", paperID), zap.Error(err))
		raw, err = s.provider.Generate(ctx, s.cfg.Model, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate analysis: %w", err)
		}
	}
	var result analysisResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	now := timeutil.NowUnix()
	if err := s.papers.UpdateAnalysis(ctx, userID, paperID, result.Summary, result.KeyFindings, result.Gaps, now); err != nil {
		return nil, err
	}
	paper.AISummary = result.Summary
	paper.AIKeyFindings = result.KeyFindings
	paper.AIGaps = result.Gaps
	paper.AnalyzedAt = now
	return paper, nil
}

func (s *AIService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.provider == nil {
		return nil, appErr.ErrAIUnavailable
	}
	vector, err := s.provider.Embed(ctx, s.cfg.EmbedModel, text)
	if errors.Is(err, ai.ErrUnavailable) {
		return nil, appErr.ErrAIUnavailable
	}
	return vector, err
}

// truncateInput caps text at max bytes, backing up to a rune boundary so the
// cut never produces invalid UTF-8.
func truncateInput(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// stripCodeFence unwraps ```json fenced blocks that chat models like to emit
// even when asked for bare JSON.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
