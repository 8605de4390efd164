package closing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/simaogato/notaryflow-backend/internal/domain"
	"github.com/simaogato/notaryflow-backend/internal/platform/logger"
	"github.com/simaogato/notaryflow-backend/internal/platform/metrics"
	"github.com/simaogato/notaryflow-backend/internal/usecase/cost_calculator"
	"github.com/simaogato/notaryflow-backend/internal/usecase/timeline_planner"
)

// Settings are the values injected into the service at startup
type Settings struct {
	Regime           domain.TaxRegime
	SafetyBufferDays int
	DefaultLeadDays  int
	LeadTimeCacheTTL time.Duration
}

// DefaultSettings returns the built-in regime and planner constants
func DefaultSettings() Settings {
	return Settings{
		Regime:           domain.DefaultTaxRegime(),
		SafetyBufferDays: timeline_planner.DefaultSafetyBufferDays,
		DefaultLeadDays:  domain.DefaultLeadDays,
		LeadTimeCacheTTL: 10 * time.Minute,
	}
}

// UnknownJurisdictionLabel is the metrics label for jurisdictions without stored lead times
const UnknownJurisdictionLabel = "unknown"

// CUITCheck is the outcome of validating a taxpayer identifier
type CUITCheck struct {
	Normalized  string
	Formatted   string
	Valid       bool
	LegalEntity bool
}

// ClosingService validates requests and runs the cost and timeline engines.
// Lead-time tables are read through the repository and cached per jurisdiction.
type ClosingService struct {
	LeadTimeRepo domain.LeadTimeRepository
	Settings     Settings
	Now          func() time.Time

	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewClosingService creates a new ClosingService instance.
// A nil metrics value registers a private set; a nil logger uses slog.Default().
func NewClosingService(leadTimeRepo domain.LeadTimeRepository, settings Settings, m *metrics.Metrics, log *slog.Logger) *ClosingService {
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	if log == nil {
		log = slog.Default()
	}

	return &ClosingService{
		LeadTimeRepo: leadTimeRepo,
		Settings:     settings,
		Now:          time.Now,
		cache:        cache.New(settings.LeadTimeCacheTTL, 2*settings.LeadTimeCacheTTL),
		metrics:      m,
		logger:       log,
	}
}

// EstimateCosts validates the request strictly and prices the transfer
func (s *ClosingService) EstimateCosts(ctx context.Context, req domain.CostCalculationRequest) (domain.CostCalculationResult, error) {
	if err := req.Validate(); err != nil {
		return domain.CostCalculationResult{}, err
	}

	result := cost_calculator.ComputeCosts(req, s.Settings.Regime)

	s.metrics.IncrementCostEstimates(string(req.Currency))
	s.log(ctx).Info("cost estimate computed",
		"currency", req.Currency,
		"base_amount_local", result.BaseAmountLocal.StringFixed(2),
		"total_local", result.TotalLocal.StringFixed(2))

	return result, nil
}

// PlanClosing validates the request and plans the certificate requests for a signing date.
// A blank jurisdiction defaults to PBA and a blank mode to SIMPLE.
func (s *ClosingService) PlanClosing(ctx context.Context, req domain.FeasibilityPlanRequest) (domain.FeasibilityPlan, error) {
	req.Jurisdiction = strings.ToUpper(strings.TrimSpace(req.Jurisdiction))
	if req.Jurisdiction == "" {
		req.Jurisdiction = domain.DefaultJurisdiction
	}
	req.Mode = domain.Mode(strings.ToUpper(strings.TrimSpace(string(req.Mode))))
	if req.Mode == "" {
		req.Mode = domain.ModeSimple
	}

	if err := req.Validate(); err != nil {
		return domain.FeasibilityPlan{}, err
	}

	leadTimes, known, err := s.leadTimes(ctx, req.Jurisdiction)
	if err != nil {
		return domain.FeasibilityPlan{}, err
	}

	rules := timeline_planner.Rules{
		Table:            domain.LeadTimeTable{req.Jurisdiction: leadTimes},
		SafetyBufferDays: s.Settings.SafetyBufferDays,
		DefaultLeadDays:  s.Settings.DefaultLeadDays,
	}
	plan := timeline_planner.PlanTimeline(req, s.Now(), rules)

	jurisdictionLabel := req.Jurisdiction
	if !known {
		jurisdictionLabel = UnknownJurisdictionLabel
	}
	s.metrics.IncrementClosingPlans(jurisdictionLabel, string(plan.Feasibility))
	s.log(ctx).Info("closing plan computed",
		"jurisdiction", req.Jurisdiction,
		"mode", req.Mode,
		"target_date", domain.FormatDate(plan.TargetDate),
		"feasibility", plan.Feasibility,
		"alerts", len(plan.Alerts))

	return plan, nil
}

// UpdateLeadTimes stores new processing days for a jurisdiction and drops its cached table
func (s *ClosingService) UpdateLeadTimes(ctx context.Context, jurisdiction string, leadTimes domain.JurisdictionLeadTimes) error {
	jurisdiction = strings.ToUpper(strings.TrimSpace(jurisdiction))
	if jurisdiction == "" {
		return errors.New("jurisdiction must have a name")
	}
	if err := leadTimes.Validate(); err != nil {
		return err
	}

	if err := s.LeadTimeRepo.Save(ctx, jurisdiction, leadTimes); err != nil {
		return err
	}
	s.cache.Delete(jurisdiction)

	s.log(ctx).Info("lead times updated", "jurisdiction", jurisdiction, "keys", len(leadTimes))
	return nil
}

// ListJurisdictions returns the jurisdictions with stored lead times
func (s *ClosingService) ListJurisdictions(ctx context.Context) ([]string, error) {
	jurisdictions, err := s.LeadTimeRepo.ListJurisdictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jurisdictions: %w", err)
	}
	return jurisdictions, nil
}

// CheckCUIT validates a CUIT/CUIL. required selects the strict policy for empty input;
// a non-empty dni must match the identifier's middle digits.
func (s *ClosingService) CheckCUIT(ctx context.Context, cuit, dni string, required bool) CUITCheck {
	valid := domain.ValidateCUITForDNI(cuit, dni)
	if !required && cuit == "" {
		valid = domain.ValidateCUIT(cuit)
	}

	s.metrics.IncrementCUITChecks(valid)
	s.log(ctx).Debug("cuit checked", "valid", valid, "required", required)

	return CUITCheck{
		Normalized:  domain.NormalizeCUIT(cuit),
		Formatted:   domain.FormatCUIT(cuit),
		Valid:       valid,
		LegalEntity: valid && domain.IsLegalEntityCUIT(cuit),
	}
}

// leadTimes returns the jurisdiction's table from the cache or the repository.
// An unknown jurisdiction yields an empty table so every key uses the default;
// known is false in that case and nothing is cached.
func (s *ClosingService) leadTimes(ctx context.Context, jurisdiction string) (domain.JurisdictionLeadTimes, bool, error) {
	if cached, found := s.cache.Get(jurisdiction); found {
		s.metrics.IncrementLeadTimeLookups("cache")
		return cached.(domain.JurisdictionLeadTimes), true, nil
	}

	leadTimes, err := s.LeadTimeRepo.GetByJurisdiction(ctx, jurisdiction)
	switch {
	case errors.Is(err, domain.ErrJurisdictionNotFound):
		s.log(ctx).Warn("no lead times stored, using default lead time",
			"jurisdiction", jurisdiction,
			"default_lead_days", s.Settings.DefaultLeadDays)
		s.metrics.IncrementLeadTimeLookups("default")
		return domain.JurisdictionLeadTimes{}, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to load lead times for %s: %w", jurisdiction, err)
	}

	s.metrics.IncrementLeadTimeLookups("repository")
	s.cache.SetDefault(jurisdiction, leadTimes)
	return leadTimes, true, nil
}

func (s *ClosingService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOr(ctx, s.logger)
}
