package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	DefaultModel         = "gemini-2.5-flash"
	DefaultMaxIterations = 8
)

// ErrEmptyResponse is returned when Gemini answers without any candidate.
var ErrEmptyResponse = errors.New("gemini returned no candidates")

// chatSession is the part of *genai.ChatSession the agent loop drives.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiAgent runs a Gemini function-calling loop over the supplied tools.
type GeminiAgent struct {
	client        *genai.Client
	model         string
	maxIterations int
	logger        *zap.Logger

	now       func() time.Time
	startChat func(tools []Tool) chatSession
}

func NewGeminiAgent(ctx context.Context, apiKey, model string, maxIterations int, logger *zap.Logger) (*GeminiAgent, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &GeminiAgent{
		client:        client,
		model:         model,
		maxIterations: maxIterations,
		logger:        logger,
		now:           time.Now,
	}
	a.startChat = a.geminiChat
	return a, nil
}

// Close releases the underlying Gemini client.
func (a *GeminiAgent) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

func (a *GeminiAgent) geminiChat(tools []Tool) chatSession {
	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(0)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction(a.now())))
	if len(tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: declarations(tools)}}
	}
	return model.StartChat()
}

// Invoke sends input and keeps answering function calls until Gemini replies
// with text alone, or the iteration limit is hit.
func (a *GeminiAgent) Invoke(ctx context.Context, input string, tools []Tool) (string, error) {
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}

	cs := a.startChat(tools)
	parts := []genai.Part{genai.Text(input)}

	for i := 0; i < a.maxIterations; i++ {
		resp, err := cs.SendMessage(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("gemini generate error: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", ErrEmptyResponse
		}

		text, calls := splitParts(resp.Candidates[0].Content.Parts)
		if len(calls) == 0 {
			return text, nil
		}

		parts = make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			result := a.callTool(ctx, byName, call)
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: map[string]any{"result": result},
			})
		}
	}

	a.logger.Warn("agent stopped at iteration limit", zap.Int("maxIterations", a.maxIterations))
	return EarlyStopMessage, nil
}

func (a *GeminiAgent) callTool(ctx context.Context, byName map[string]Tool, call genai.FunctionCall) string {
	tool, ok := byName[call.Name]
	if !ok || tool.Handler == nil {
		a.logger.Warn("agent requested unknown tool", zap.String("tool", call.Name))
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	args := stringArgs(call.Args)
	a.logger.Info("agent tool call", zap.String("tool", call.Name), zap.Any("args", args))
	result := tool.Handler(ctx, args)
	a.logger.Debug("agent tool result", zap.String("tool", call.Name), zap.String("result", result))
	return result
}

func splitParts(parts []genai.Part) (string, []genai.FunctionCall) {
	var sb strings.Builder
	var calls []genai.FunctionCall
	for _, part := range parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			calls = append(calls, p)
		case *genai.FunctionCall:
			calls = append(calls, *p)
		}
	}
	return sb.String(), calls
}

func stringArgs(raw map[string]any) map[string]string {
	args := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			args[k] = s
			continue
		}
		args[k] = fmt.Sprint(v)
	}
	return args
}

func declarations(tools []Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(t.Params)),
		}
		for _, p := range t.Params {
			schema.Properties[p.Name] = &genai.Schema{Type: genai.TypeString, Description: p.Description}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  schema,
		})
	}
	return decls
}
