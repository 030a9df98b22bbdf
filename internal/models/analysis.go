package models

import (
	"bytes"
	"encoding/json"
)

// MatchAnalysis is one match as described by the model. Field values are free
// text; nothing is parsed or validated. The raw JSON the record was decoded
// from is kept so exports and history reproduce the model output exactly.
type MatchAnalysis struct {
	Sport            Text              `json:"deporte"`
	Match            Text              `json:"partido"`
	Date             Text              `json:"fecha"`
	Venue            Text              `json:"arena"`
	KeyStats         *MatchStats       `json:"estadisticas_clave,omitempty"`
	ExpertAnalyses   []ExpertAnalysis  `json:"analisis_expertos,omitempty"`
	Convergence      *Convergence      `json:"convergencia_fuentes,omitempty"`
	FinalPredictions *FinalPredictions `json:"predicciones_finales,omitempty"`
	RiskFactors      TextList          `json:"factores_riesgo,omitempty"`
	ProcessedURLs    TextList          `json:"urls_procesadas,omitempty"`

	raw json.RawMessage
}

type MatchStats struct {
	TeamA *TeamStats `json:"equipo_a,omitempty"`
	TeamB *TeamStats `json:"equipo_b,omitempty"`
}

type TeamStats struct {
	Record        Text `json:"record"`
	OffensivePPG  Text `json:"ppg_ofensivo"`
	DefensivePPG  Text `json:"ppg_defensivo"`
	LastFive      Text `json:"ultimas_5"`
	HomeRecord    Text `json:"en_casa"`
	ATS           Text `json:"ats"`
	OffensiveRank Text `json:"ranking_ofensiva"`
	DefensiveRank Text `json:"ranking_defensiva"`
}

type ExpertAnalysis struct {
	AnalystName Text     `json:"nombre_analista"`
	Source      Text     `json:"fuente"`
	Prediction  Text     `json:"prediccion"`
	Reasoning   Text     `json:"razonamiento"`
	CitedStats  TextList `json:"stats_citadas,omitempty"`
	Confidence  Text     `json:"confianza"`
}

type Convergence struct {
	ExpertAgreement    Text `json:"acuerdo_expertos"`
	StatisticalSupport Text `json:"respaldo_estadistico"`
	ConsensusLevel     Text `json:"nivel_consenso"`
}

type FinalPredictions struct {
	Winner    *WinnerPick    `json:"ganador_estimado,omitempty"`
	Moneyline *MoneylinePick `json:"moneyline,omitempty"`
	Spread    *SpreadPick    `json:"spread,omitempty"`
	OverUnder *OverUnderPick `json:"over_under,omitempty"`
}

type WinnerPick struct {
	Team       Text `json:"equipo"`
	Confidence Text `json:"confianza"`
	Reason     Text `json:"razon"`
}

type MoneylinePick struct {
	Pick  Text `json:"prediccion"`
	Odds  Text `json:"odds"`
	Value Text `json:"valor"`
}

type SpreadPick struct {
	Pick     Text `json:"prediccion"`
	Reason   Text `json:"razon"`
	ATSTrend Text `json:"tendencia_ats"`
}

type OverUnderPick struct {
	Pick       Text `json:"prediccion"`
	Line       Text `json:"numero"`
	Reason     Text `json:"razon"`
	Projection Text `json:"proyeccion"`
}

type matchAnalysisFields MatchAnalysis

// UnmarshalJSON never rejects well-formed JSON. Blocks whose JSON type does not
// fit are left empty and values that are not objects become records with no
// fields; the raw bytes are kept in every case.
func (m *MatchAnalysis) UnmarshalJSON(data []byte) error {
	*m = MatchAnalysis{raw: append(json.RawMessage(nil), bytes.TrimSpace(data)...)}

	fields, ok := objectFields(data)
	if !ok {
		return nil
	}

	decodeValue(fields, "deporte", &m.Sport)
	decodeValue(fields, "partido", &m.Match)
	decodeValue(fields, "fecha", &m.Date)
	decodeValue(fields, "arena", &m.Venue)
	decodeValue(fields, "factores_riesgo", &m.RiskFactors)
	decodeValue(fields, "urls_procesadas", &m.ProcessedURLs)
	m.KeyStats = decodeObject[MatchStats](fields["estadisticas_clave"])
	m.ExpertAnalyses = decodeObjects[ExpertAnalysis](fields["analisis_expertos"])
	m.Convergence = decodeObject[Convergence](fields["convergencia_fuentes"])
	m.FinalPredictions = decodeObject[FinalPredictions](fields["predicciones_finales"])
	return nil
}

func (s *MatchStats) UnmarshalJSON(data []byte) error {
	*s = MatchStats{}
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	s.TeamA = decodeObject[TeamStats](fields["equipo_a"])
	s.TeamB = decodeObject[TeamStats](fields["equipo_b"])
	return nil
}

func (p *FinalPredictions) UnmarshalJSON(data []byte) error {
	*p = FinalPredictions{}
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	p.Winner = decodeObject[WinnerPick](fields["ganador_estimado"])
	p.Moneyline = decodeObject[MoneylinePick](fields["moneyline"])
	p.Spread = decodeObject[SpreadPick](fields["spread"])
	p.OverUnder = decodeObject[OverUnderPick](fields["over_under"])
	return nil
}

func objectFields(data []byte) (map[string]json.RawMessage, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func decodeValue(fields map[string]json.RawMessage, key string, dst json.Unmarshaler) {
	if v, ok := fields[key]; ok {
		_ = dst.UnmarshalJSON(v)
	}
}

// decodeObject returns nil unless raw is a JSON object that decodes into T.
func decodeObject[T any](raw json.RawMessage) *T {
	if _, ok := objectFields(raw); !ok {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// decodeObjects keeps the object elements of an array. A lone object counts as
// a one-element array.
func decodeObjects[T any](raw json.RawMessage) []T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		if v := decodeObject[T](trimmed); v != nil {
			return []T{*v}
		}
		return nil
	}
	var items []json.RawMessage
	if trimmed[0] != '[' || json.Unmarshal(trimmed, &items) != nil {
		return nil
	}
	var out []T
	for _, item := range items {
		if v := decodeObject[T](item); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Raw returns the JSON the record was decoded from, if any.
func (m *MatchAnalysis) Raw() json.RawMessage {
	return m.raw
}

func (m MatchAnalysis) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}
	return json.Marshal(matchAnalysisFields(m))
}

// Teams returns both team stat blocks, never nil.
func (m *MatchAnalysis) Teams() (TeamStats, TeamStats) {
	var a, b TeamStats
	if m.KeyStats != nil {
		if m.KeyStats.TeamA != nil {
			a = *m.KeyStats.TeamA
		}
		if m.KeyStats.TeamB != nil {
			b = *m.KeyStats.TeamB
		}
	}
	return a, b
}

// Predictions returns the final picks with every block present.
func (m *MatchAnalysis) Predictions() FinalPredictions {
	p := FinalPredictions{
		Winner:    &WinnerPick{},
		Moneyline: &MoneylinePick{},
		Spread:    &SpreadPick{},
		OverUnder: &OverUnderPick{},
	}
	if m.FinalPredictions == nil {
		return p
	}
	if m.FinalPredictions.Winner != nil {
		p.Winner = m.FinalPredictions.Winner
	}
	if m.FinalPredictions.Moneyline != nil {
		p.Moneyline = m.FinalPredictions.Moneyline
	}
	if m.FinalPredictions.Spread != nil {
		p.Spread = m.FinalPredictions.Spread
	}
	if m.FinalPredictions.OverUnder != nil {
		p.OverUnder = m.FinalPredictions.OverUnder
	}
	return p
}

func (m *MatchAnalysis) ConsensusLevel() string {
	if m.Convergence == nil {
		return ""
	}
	return m.Convergence.ConsensusLevel.String()
}
