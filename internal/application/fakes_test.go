package application

import (
	"context"
	"strings"
	"sync"

	"pronostico/internal/models"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	keys    []string
	text    string
	err     error
}

func (g *fakeGenerator) Generate(_ context.Context, apiKey, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.keys = append(g.keys, apiKey)
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

type fakeFetcher struct {
	excerpts []models.SourceExcerpt
	errs     []error
	urls     []string
}

func (f *fakeFetcher) FetchAll(_ context.Context, urls []string) ([]models.SourceExcerpt, []error) {
	f.urls = append(f.urls, urls...)
	return f.excerpts, f.errs
}

type sheetsCall struct {
	method string
	args   []string
	values [][]interface{}
}

type fakeSheetsClient struct {
	calls []sheetsCall
	err   error
}

func (c *fakeSheetsClient) CreateSpreadsheet(_ context.Context, title string) (string, string, error) {
	c.calls = append(c.calls, sheetsCall{method: "create", args: []string{title}})
	if c.err != nil {
		return "", "", c.err
	}
	return "sheet-1", "https://docs.google.com/spreadsheets/d/sheet-1", nil
}

func (c *fakeSheetsClient) AddPermission(_ context.Context, id, email, role string) error {
	c.calls = append(c.calls, sheetsCall{method: "permission", args: []string{id, email, role}})
	return c.err
}

func (c *fakeSheetsClient) MakePublic(_ context.Context, id string) error {
	c.calls = append(c.calls, sheetsCall{method: "public", args: []string{id}})
	return c.err
}

func (c *fakeSheetsClient) ReplaceValues(_ context.Context, id, clearRange, startCell string, values [][]interface{}) error {
	c.calls = append(c.calls, sheetsCall{method: "replace", args: []string{id, clearRange, startCell}, values: values})
	return c.err
}

func (c *fakeSheetsClient) methods() string {
	names := make([]string, len(c.calls))
	for i, call := range c.calls {
		names[i] = call.method
	}
	return strings.Join(names, ",")
}

const sampleMatch = `{
  "deporte": "NBA",
  "partido": "Lakers vs Celtics",
  "fecha": "2025-01-20",
  "arena": "Crypto.com Arena",
  "analisis_expertos": [
    {"nombre_analista": "Ana", "fuente": "ESPN", "prediccion": "Lakers -3.5", "razonamiento": "Mejor defensa", "stats_citadas": ["112.4 PPG"], "confianza": "Alta"}
  ],
  "convergencia_fuentes": {"acuerdo_expertos": "3 de 4", "respaldo_estadistico": "Sí", "nivel_consenso": "Alto"},
  "predicciones_finales": {
    "ganador_estimado": {"equipo": "Lakers", "confianza": "Media", "razon": "Local"},
    "moneyline": {"prediccion": "Lakers", "odds": "-150", "valor": "Bajo"},
    "spread": {"prediccion": "Lakers -3.5", "razon": "ATS 7-3", "tendencia_ats": "7-3"},
    "over_under": {"prediccion": "Over", "numero": "221.5", "razon": "Ritmo alto", "proyeccion": "226"}
  },
  "factores_riesgo": ["Lesión de LeBron", "Back-to-back"],
  "urls_procesadas": ["https://espn.com/nba"]
}`
