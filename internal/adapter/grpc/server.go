package grpc

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/notaryflow-backend/internal/domain"
	"github.com/simaogato/notaryflow-backend/internal/usecase/closing"
)

// Server implements the NotaryService gRPC server
type Server struct {
	ClosingService *closing.ClosingService
}

// NewServer creates a new gRPC server instance
func NewServer(closingService *closing.ClosingService) *Server {
	return &Server{
		ClosingService: closingService,
	}
}

// ComputeCosts handles the ComputeCosts RPC
func (s *Server) ComputeCosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	price, _, err := decimalField(req, "price")
	if err != nil {
		return nil, err
	}

	exchangeRate, _, err := decimalField(req, "exchange_rate")
	if err != nil {
		return nil, err
	}

	fiscalValuation, _, err := decimalField(req, "fiscal_valuation")
	if err != nil {
		return nil, err
	}

	acquisitionDate, err := dateField(req, "acquisition_date")
	if err != nil {
		return nil, err
	}

	// Parse optional exemption threshold
	var threshold *decimal.Decimal
	if value, ok, err := decimalField(req, "exemption_threshold"); err != nil {
		return nil, err
	} else if ok {
		threshold = &value
	}

	input := domain.CostCalculationRequest{
		Price:              price,
		Currency:           domain.Currency(strings.ToUpper(stringField(req, "currency"))),
		ExchangeRate:       exchangeRate,
		AcquisitionDate:    acquisitionDate,
		IsUniqueHome:       req.GetFields()["is_unique_home"].GetBoolValue(),
		FiscalValuation:    fiscalValuation,
		ExemptionThreshold: threshold,
	}

	result, err := s.ClosingService.EstimateCosts(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"base_amount_local": money(result.BaseAmountLocal),
		"detail": map[string]interface{}{
			"stamp_tax":             money(result.Detail.StampTax),
			"transfer_tax":          money(result.Detail.TransferTax),
			"notarial_fee":          money(result.Detail.NotarialFee),
			"vat":                   money(result.Detail.VAT),
			"notarial_contribution": money(result.Detail.NotarialContribution),
		},
		"total_local": money(result.TotalLocal),
	}
	if result.TotalForeign != nil {
		response["total_foreign"] = money(*result.TotalForeign)
	}

	return newStruct(response)
}

// PlanTimeline handles the PlanTimeline RPC
func (s *Server) PlanTimeline(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	targetDate, err := dateField(req, "target_date")
	if err != nil {
		return nil, err
	}

	input := domain.FeasibilityPlanRequest{
		TargetDate:   targetDate,
		Jurisdiction: stringField(req, "jurisdiction"),
		Mode:         domain.Mode(stringField(req, "mode")),
	}

	plan, err := s.ClosingService.PlanClosing(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	tasks := make([]interface{}, 0, len(plan.Tasks))
	for _, task := range plan.Tasks {
		tasks = append(tasks, map[string]interface{}{
			"requirement": string(task.Requirement),
			"action":      task.Action,
			"deadline":    domain.FormatDate(task.Deadline),
			"lead_days":   task.LeadDays,
			"status":      string(task.Status),
		})
	}

	alerts := make([]interface{}, 0, len(plan.Alerts))
	for _, alert := range plan.Alerts {
		alerts = append(alerts, alert)
	}

	return newStruct(map[string]interface{}{
		"target_date": domain.FormatDate(plan.TargetDate),
		"feasibility": string(plan.Feasibility),
		"tasks":       tasks,
		"alerts":      alerts,
	})
}

// CheckCUIT handles the CheckCUIT RPC
func (s *Server) CheckCUIT(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	cuit := stringField(req, "cuit")

	check := s.ClosingService.CheckCUIT(ctx, cuit, stringField(req, "dni"), req.GetFields()["required"].GetBoolValue())

	return newStruct(map[string]interface{}{
		"normalized":   check.Normalized,
		"formatted":    check.Formatted,
		"valid":        check.Valid,
		"legal_entity": check.LegalEntity,
	})
}

// UpdateLeadTimes handles the UpdateLeadTimes RPC
func (s *Server) UpdateLeadTimes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	jurisdiction := stringField(req, "jurisdiction")

	raw := req.GetFields()["lead_times"].GetStructValue()
	if raw == nil {
		return nil, status.Errorf(codes.InvalidArgument, "lead_times must be an object")
	}

	leadTimes := make(domain.JurisdictionLeadTimes, len(raw.GetFields()))
	for key, value := range raw.GetFields() {
		number, ok := value.GetKind().(*structpb.Value_NumberValue)
		if !ok || number.NumberValue != math.Trunc(number.NumberValue) {
			return nil, status.Errorf(codes.InvalidArgument, "invalid lead_times.%s: must be a whole number of days", key)
		}
		if math.Abs(number.NumberValue) > math.MaxInt32 {
			return nil, status.Errorf(codes.InvalidArgument, "invalid lead_times.%s: must be at most %d", key, domain.MaxLeadDays)
		}
		leadTimes[key] = int(number.NumberValue)
	}

	if err := s.ClosingService.UpdateLeadTimes(ctx, jurisdiction, leadTimes); err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"jurisdiction": strings.ToUpper(strings.TrimSpace(jurisdiction)),
		"updated":      len(leadTimes),
	})
}

// stringField returns a string field, or "" when absent or not a string
func stringField(s *structpb.Struct, key string) string {
	return strings.TrimSpace(s.GetFields()[key].GetStringValue())
}

// decimalField parses an amount sent either as a string (preferred, exact) or a number.
// The bool result is false when the field is absent or null.
func decimalField(s *structpb.Struct, key string) (decimal.Decimal, bool, error) {
	value, ok := s.GetFields()[key]
	if !ok {
		return decimal.Zero, false, nil
	}

	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
		return decimal.Zero, false, nil
	case *structpb.Value_StringValue:
		if strings.TrimSpace(kind.StringValue) == "" {
			return decimal.Zero, false, nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(kind.StringValue))
		if err != nil {
			return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return d, true, nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(kind.NumberValue) || math.IsInf(kind.NumberValue, 0) {
			return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "invalid %s: must be finite", key)
		}
		return decimal.NewFromFloat(kind.NumberValue), true, nil
	default:
		return decimal.Zero, false, status.Errorf(codes.InvalidArgument, "invalid %s: must be a string or number", key)
	}
}

// dateField parses a YYYY-MM-DD field. An absent field yields the zero time,
// which the domain validation rejects where a date is required.
func dateField(s *structpb.Struct, key string) (time.Time, error) {
	raw := stringField(s, key)
	if raw == "" {
		return time.Time{}, nil
	}

	t, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
	}
	return t, nil
}

// money renders an amount with exactly two decimals
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "must be positive") ||
		strings.Contains(errorMsg, "must not be") ||
		strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "is required") ||
		strings.Contains(errorMsg, "must have") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Map "not found" errors to NotFound
	if strings.Contains(errorMsg, "not found") {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
