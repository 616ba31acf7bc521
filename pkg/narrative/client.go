// Package narrative turns plan numbers into a short executive summary for
// the generated report. A model-backed generator produces the prose; the
// static generator is the fallback when no API key is configured.
package narrative

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// Facts are the plan figures the summary is written from.
type Facts struct {
	Sports          []string
	SquareFeet      int
	Mode            string
	CapExTotal      float64
	MonthlyRevenue  float64
	MonthlyEBITDA   float64
	BreakEvenMonths *int
	ROIPct          float64
}

// Generator produces an executive summary from plan facts.
type Generator interface {
	Summary(ctx context.Context, f Facts) (string, error)
}

const (
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 512
)

const systemPrompt = `You write concise executive summaries for indoor sports facility business plans.
Write 2-3 short paragraphs in plain, confident prose. Use only the figures provided.
Do not invent numbers, do not use headings or bullet points.`

// messageAPI is the slice of the SDK the generator calls, extracted so tests
// can substitute a fake.
type messageAPI interface {
	New(ctx context.Context, params sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Option configures the model-backed generator.
type Option func(*modelGenerator)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(g *modelGenerator) {
		if model != "" {
			g.model = model
		}
	}
}

type modelGenerator struct {
	messages messageAPI
	model    string
}

// NewClient creates a model-backed Generator.
func NewClient(apiKey string, opts ...Option) Generator {
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	g := &modelGenerator{
		messages: &client.Messages,
		model:    defaultModel,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *modelGenerator) Summary(ctx context.Context, f Facts) (string, error) {
	msg, err := g.messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: defaultMaxTokens,
		System:    []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(f.prompt())),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "narrative: create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "", eris.New("narrative: empty model response")
	}
	return summary, nil
}

// prompt renders the facts as the user message.
func (f Facts) prompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sports offered: %s\n", strings.Join(f.Sports, ", "))
	fmt.Fprintf(&b, "Facility size: %d sq ft\n", f.SquareFeet)
	if f.Mode != "" {
		fmt.Fprintf(&b, "Acquisition: %s\n", f.Mode)
	}
	fmt.Fprintf(&b, "Total capital required: $%.0f\n", f.CapExTotal)
	fmt.Fprintf(&b, "Projected monthly revenue: $%.0f\n", f.MonthlyRevenue)
	fmt.Fprintf(&b, "Projected monthly EBITDA: $%.0f\n", f.MonthlyEBITDA)
	if f.BreakEvenMonths != nil {
		fmt.Fprintf(&b, "Break-even: %d months\n", *f.BreakEvenMonths)
	} else {
		b.WriteString("Break-even: not reached at projected EBITDA\n")
	}
	fmt.Fprintf(&b, "Annual ROI: %.1f%%\n", f.ROIPct)
	return b.String()
}

// Static is a deterministic Generator used when no API key is configured.
type Static struct{}

func (Static) Summary(_ context.Context, f Facts) (string, error) {
	sports := strings.Join(f.Sports, ", ")
	if sports == "" {
		sports = "multi-sport"
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"This plan outlines a %d sq ft indoor facility offering %s. Total capital required is estimated at $%.0f.\n\n",
		f.SquareFeet, sports, f.CapExTotal,
	)
	fmt.Fprintf(&b,
		"At projected monthly revenue of $%.0f the facility generates $%.0f in monthly EBITDA",
		f.MonthlyRevenue, f.MonthlyEBITDA,
	)
	if f.BreakEvenMonths != nil {
		fmt.Fprintf(&b, ", recovering the initial investment in roughly %d months (%.1f%% annual ROI).",
			*f.BreakEvenMonths, f.ROIPct)
	} else {
		b.WriteString(". At these projections the facility does not recover its initial investment; revisit pricing or operating costs.")
	}
	return b.String(), nil
}
