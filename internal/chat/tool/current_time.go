package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/acai-travel/global-time-agent/internal/worldtime"
	"github.com/openai/openai-go/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Resolver interface {
	Resolve(ctx context.Context, location string) worldtime.Result
}

// CurrentTimeTool reports the local time at a named place
type CurrentTimeTool struct {
	resolver Resolver
	resolves metric.Int64Counter
}

func NewCurrentTimeTool(resolver Resolver) (*CurrentTimeTool, error) {
	resolves, err := otel.Meter("acai.worldtime.tool").Int64Counter(
		"worldtime.resolve.count",
		metric.WithDescription("Location time resolutions by outcome"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolve counter: %w", err)
	}

	return &CurrentTimeTool{resolver: resolver, resolves: resolves}, nil
}

func (t *CurrentTimeTool) Name() string {
	return "get_current_time"
}

func (t *CurrentTimeTool) Description() string {
	return "Returns the current local time in any country or city worldwide. Example: 'India', 'France', 'New York', 'Tokyo', etc."
}

func (t *CurrentTimeTool) Parameters() openai.FunctionParameters {
	return openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]string{
				"type":        "string",
				"description": "Country, city or place name",
			},
		},
		"required": []string{"location"},
	}
}

// Execute returns the resolution result as JSON. Resolution failures are part
// of the document; only malformed arguments produce an error.
func (t *CurrentTimeTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	out, err := json.Marshal(t.Resolve(ctx, args.Location))
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(out), nil
}

// Resolve runs the resolver and records the outcome.
func (t *CurrentTimeTool) Resolve(ctx context.Context, location string) worldtime.Result {
	res := t.resolver.Resolve(ctx, location)

	outcome := worldtime.StatusSuccess
	if !res.OK() {
		outcome = res.Kind.String()
	}
	t.resolves.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	return res
}
