package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// FallbackMessage is shown to the farmer whenever the analysis cannot be produced.
const FallbackMessage = "Não foi possível gerar a análise no momento. Verifique sua conexão."

const requestTimeout = 30 * time.Second

// ErrMissingAcquisitionData indicates the purchase price or weight was left empty.
var ErrMissingAcquisitionData = errors.New("purchase price and initial weight are required")

// ErrNoProvider indicates no language model is configured.
var ErrNoProvider = errors.New("no analysis provider configured")

// Generator sends a single prompt to a language model and returns its text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ServiceError wraps a failure of the language model provider.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis provider %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Service turns a projection summary into a short natural-language recommendation.
type Service struct {
	generator Generator
	provider  string
	logger    *zap.Logger
}

// NewService wires an advisor. A nil generator makes every analysis fall back.
func NewService(generator Generator, provider string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, provider: provider, logger: logger}
}

// Ready reports whether the inputs carry enough data to ask for an analysis.
func Ready(in models.SummaryInput) bool {
	return strings.TrimSpace(string(in.BasePrice)) != "" && strings.TrimSpace(string(in.InitialWeight)) != ""
}

// Summarize asks the provider once. Provider failures come back as *ServiceError.
func (s *Service) Summarize(ctx context.Context, in models.SummaryInput) (string, error) {
	if !Ready(in) {
		return "", ErrMissingAcquisitionData
	}
	if s.generator == nil {
		return "", &ServiceError{Provider: s.provider, Err: ErrNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, BuildPrompt(in))
	if err != nil {
		return "", &ServiceError{Provider: s.provider, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ServiceError{Provider: s.provider, Err: errors.New("empty response")}
	}
	return text, nil
}

// Analyze is Summarize with provider failures replaced by FallbackMessage. Only missing
// acquisition data is reported as an error.
func (s *Service) Analyze(ctx context.Context, in models.SummaryInput) (string, error) {
	text, err := s.Summarize(ctx, in)
	if err == nil {
		return text, nil
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		s.logger.Warn("analysis unavailable", zap.String("provider", s.provider), zap.Error(err))
		return FallbackMessage, nil
	}
	return "", err
}

// BuildPrompt renders the consultant prompt for a projection summary.
func BuildPrompt(in models.SummaryInput) string {
	return fmt.Sprintf(`Como um consultor especialista em pecuária de corte do aplicativo "Boi no Lucro", analise os seguintes dados:

DADOS DE AQUISIÇÃO:
- Preço Base: R$ %s
- Peso Inicial: %s kg
- GMD (Ganho Médio Diário): %s kg

MELHOR PROJEÇÃO (em %d dias):
- Lucro Total: R$ %s
- Rentabilidade Mensal: %s%%
- Custo por @ Produzida: R$ %s

Forneça uma análise curta (máximo 150 palavras) em Português do Brasil sobre a viabilidade deste negócio, riscos e uma recomendação estratégica baseada no melhor prazo de venda identificado.`,
		in.BasePrice, in.InitialWeight, in.DailyGain,
		in.BestDays,
		fixed2(in.ProfitLoss),
		fixed2(in.MonthlyReturnPct),
		fixed2(in.CostPerUnitProduced),
	)
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
