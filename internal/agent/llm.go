package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cardforge/zhajinhua/internal/game"
)

const systemPrompt = `You are playing zhajinhua, a three-card betting game.
You receive the table state and your legal actions as JSON. Respond with a
single JSON object: {"action": "...", "amount": N, "target": N, "target2": N}.
"action" must be one of the offered actions. "amount" is the raise increment
(RAISE only). "target" is the seat to compare with (COMPARE) or the first
accused seat (ACCUSE). "target2" is the second accused seat (ACCUSE only).
Unused fields may be omitted. Respond with JSON only, no commentary.`

// LLMConfig selects the model endpoint. Zero values fall back to the
// OPENAI_* environment variables, so a populated .env is enough.
type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// LLM asks an OpenAI-compatible chat completions endpoint for decisions.
// Any transport or parse failure surfaces as an error; callers substitute
// a fold so a flaky model cannot stall the table.
type LLM struct {
	cfg    LLMConfig
	client *http.Client
}

// NewLLM builds an LLM agent, filling unset config from the environment
func NewLLM(cfg LLMConfig) (*LLM, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if cfg.APIKey == "" {
		return nil, errors.New("agent: API key missing, set OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	}
	if cfg.Model == "" {
		return nil, errors.New("agent: model missing, set OPENAI_MODEL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	return &LLM{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}, nil
}

// decisionOut is the JSON contract the model answers with
type decisionOut struct {
	Action  string `json:"action"`
	Amount  int    `json:"amount"`
	Target  *int   `json:"target"`
	Target2 *int   `json:"target2"`
}

func (l *LLM) Decide(ctx context.Context, view game.View, available []game.AvailableAction) (game.Action, error) {
	obs, err := json.Marshal(view)
	if err != nil {
		return game.Action{}, err
	}
	text, err := l.complete(ctx, string(obs))
	if err != nil {
		return game.Action{}, err
	}
	return parseDecision(view.CurrentPlayer, text, available)
}

func (l *LLM) Vote(ctx context.Context, trial TrialView) (Verdict, error) {
	obs, err := json.Marshal(trial)
	if err != nil {
		return Innocent, err
	}
	prompt := "An accusation trial is underway. You are a juror. Respond with " +
		`{"verdict": "GUILTY"} or {"verdict": "INNOCENT"}.` + "\n" + string(obs)
	text, err := l.complete(ctx, prompt)
	if err != nil {
		return Innocent, err
	}
	var out struct {
		Verdict string `json:"verdict"`
	}
	if err := decodeModelJSON(text, &out); err != nil {
		return Innocent, err
	}
	if strings.EqualFold(strings.TrimSpace(out.Verdict), string(Guilty)) {
		return Guilty, nil
	}
	return Innocent, nil
}

// parseDecision validates the model's answer against the offered actions
func parseDecision(seat int, text string, available []game.AvailableAction) (game.Action, error) {
	var out decisionOut
	if err := decodeModelJSON(text, &out); err != nil {
		return game.Action{}, err
	}
	kind, err := game.ParseActionType(strings.ToUpper(strings.TrimSpace(out.Action)))
	if err != nil {
		return game.Action{}, err
	}
	offered := false
	for _, a := range available {
		if a.Type == kind {
			offered = true
			break
		}
	}
	if !offered {
		return game.Action{}, fmt.Errorf("agent: %s not among offered actions", kind)
	}

	switch kind {
	case game.Raise:
		return game.NewRaise(seat, out.Amount), nil
	case game.Compare:
		if out.Target == nil {
			return game.Action{}, errors.New("agent: compare without target")
		}
		return game.NewCompare(seat, *out.Target), nil
	case game.Accuse:
		if out.Target == nil || out.Target2 == nil {
			return game.Action{}, errors.New("agent: accuse requires two targets")
		}
		return game.NewAccuse(seat, *out.Target, *out.Target2), nil
	default:
		return game.NewAction(seat, kind), nil
	}
}

// decodeModelJSON tolerates prose around the object, which some models
// emit even in JSON mode
func decodeModelJSON(text string, v any) error {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return errors.New("agent: empty model response")
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end < start {
			return err
		}
		return json.Unmarshal([]byte(raw[start:end+1]), v)
	}
	return nil
}

func (l *LLM) complete(ctx context.Context, user string) (string, error) {
	payload := map[string]any{
		"model": l.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": user},
		},
		"response_format": map[string]any{"type": "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		l.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.cfg.APIKey)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("agent: chat completions http %d: %s", resp.StatusCode, truncate(string(data), 400))
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &cc); err != nil {
		return "", err
	}
	if len(cc.Choices) == 0 {
		return "", errors.New("agent: no choices returned")
	}
	return cc.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
