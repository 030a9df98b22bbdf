package ai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"pronostico/internal/models"
)

var fencePattern = regexp.MustCompile("(?s)```[A-Za-z]*[ \t]*\r?\n?(.*?)```")

// InterpretResponse extracts the analysis list from the model text. The text
// may be bare JSON or wrapped in a markdown code fence.
func InterpretResponse(rawText string) ([]models.MatchAnalysis, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	candidate := extractJSON(text)

	var value json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, &ParseError{Candidate: candidate, Err: err}
	}

	results, err := NormalizeAnalyses(value)
	if err != nil {
		return nil, &ParseError{Candidate: candidate, Err: err}
	}
	return results, nil
}

// extractJSON picks the JSON candidate out of the model text: the text itself
// when it already parses, the first fenced block, or the outermost bracket span.
func extractJSON(text string) string {
	if json.Valid([]byte(text)) {
		return text
	}

	fenced := stripFence(text)
	if json.Valid([]byte(fenced)) {
		return fenced
	}

	if span, ok := bracketSpan(text); ok {
		return span
	}
	return fenced
}

func stripFence(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Unterminated fence, usually a truncated reply.
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.ContainsAny(text[:nl], "[{") {
			text = text[nl+1:]
		}
		return strings.TrimSpace(text)
	}
	return text
}

func bracketSpan(text string) (string, bool) {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return "", false
	}
	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(text, closer)
	if end <= start {
		return "", false
	}
	span := text[start : end+1]
	if !json.Valid([]byte(span)) {
		return "", false
	}
	return span, true
}

var errNotAnalysis = errors.New("expected a JSON array or object")

// containerKeys are the fields a model sometimes nests the match list under.
var containerKeys = []string{"partidos", "analisis", "matches", "results", "resultados", "data"}

// matchKeys mark an object as a match record rather than a container. Any key
// of the record schema counts, so a partial record is never unwrapped.
var matchKeys = []string{
	"deporte", "partido", "fecha", "arena",
	"estadisticas_clave", "analisis_expertos", "convergencia_fuentes",
	"predicciones_finales", "factores_riesgo", "urls_procesadas",
}

// NormalizeAnalyses turns a decoded value of uncertain shape into the list
// form: arrays are returned in order, a container object is unwrapped and any
// other object becomes a one-element list. Elements are not validated against
// the record schema.
func NormalizeAnalyses(value json.RawMessage) ([]models.MatchAnalysis, error) {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "" {
		return nil, errNotAnalysis
	}

	switch trimmed[0] {
	case '[':
		var list []models.MatchAnalysis
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, err
		}
		if list == nil {
			list = []models.MatchAnalysis{}
		}
		return list, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
			return nil, err
		}
		if inner, ok := containerList(fields); ok {
			return NormalizeAnalyses(inner)
		}
		var single models.MatchAnalysis
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, err
		}
		return []models.MatchAnalysis{single}, nil
	default:
		return nil, errNotAnalysis
	}
}

func containerList(fields map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, k := range matchKeys {
		if _, ok := fields[k]; ok {
			return nil, false
		}
	}
	for _, k := range containerKeys {
		if v, ok := fields[k]; ok && isArray(v) {
			return v, true
		}
	}
	if len(fields) == 1 {
		for _, v := range fields {
			if isArray(v) {
				return v, true
			}
		}
	}
	return nil, false
}

func isArray(v json.RawMessage) bool {
	s := strings.TrimSpace(string(v))
	return s != "" && s[0] == '['
}
