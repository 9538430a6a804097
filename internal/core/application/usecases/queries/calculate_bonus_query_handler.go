package queries

import (
	"context"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
)

// CalculateBonusQueryHandler produces bonus reports. It joins completed
// orders with quality data from the defect registry and feeds both to the
// domain bonus engine under the currently active rule.
type CalculateBonusQueryHandler struct {
	orderRepo ports.OrderRepository
	staffRepo ports.StaffRepository
	defects   ports.DefectRegistry
	rules     ports.BonusRuleSource
	engine    services.BonusEngine
}

// NewCalculateBonusQueryHandler creates a handler for bonus queries.
func NewCalculateBonusQueryHandler(
	orderRepo ports.OrderRepository,
	staffRepo ports.StaffRepository,
	defects ports.DefectRegistry,
	rules ports.BonusRuleSource,
	engine services.BonusEngine,
) CalculateBonusQueryHandler {
	return CalculateBonusQueryHandler{
		orderRepo: orderRepo,
		staffRepo: staffRepo,
		defects:   defects,
		rules:     rules,
		engine:    engine,
	}
}

// Handle executes the bonus query. A period without completed orders is a
// valid all-zero report, not an error.
func (h CalculateBonusQueryHandler) Handle(
	ctx context.Context,
	query CalculateBonusQuery,
) (CalculateBonusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	if query.Scope() == BonusScopeTeam {
		return h.handleTeam(ctx, query)
	}
	return h.handleUser(ctx, query)
}

func (h CalculateBonusQueryHandler) handleTeam(
	ctx context.Context,
	query CalculateBonusQuery,
) (CalculateBonusQueryResponse, error) {
	completed, err := h.orderRepo.GetCompletedForTeam(ctx, query.TargetID(), query.From(), query.To())
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	inputs, err := h.collectInputs(ctx, completed)
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	rule, err := h.rules.ActiveBonusRule(ctx)
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	report := h.engine.Calculate(rule, inputs)
	response := reportResponse(report)

	memberCount, err := h.staffRepo.TeamMemberCount(ctx, query.TargetID())
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}
	response.MemberShare = h.engine.TeamShare(report, memberCount)

	return response, nil
}

// handleUser sums the member's individually assigned contribution with an
// even cut of their team's bonus over the same period. A member without a
// team gets the individual contribution only.
func (h CalculateBonusQueryHandler) handleUser(
	ctx context.Context,
	query CalculateBonusQuery,
) (CalculateBonusQueryResponse, error) {
	member, err := h.staffRepo.GetMember(ctx, query.TargetID())
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	own, err := h.orderRepo.GetCompletedForUser(ctx, query.TargetID(), query.From(), query.To())
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	inputs, err := h.collectInputs(ctx, own)
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	rule, err := h.rules.ActiveBonusRule(ctx)
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	report := h.engine.Calculate(rule, inputs)
	response := reportResponse(report)

	teamID := member.TeamID()
	if teamID == nil {
		return response, nil
	}

	teamOrders, err := h.orderRepo.GetCompletedForTeam(ctx, *teamID, query.From(), query.To())
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	teamInputs, err := h.collectInputs(ctx, teamOrders)
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	teamReport := h.engine.Calculate(rule, teamInputs)

	members, err := h.staffRepo.ListTeamMembers(ctx, *teamID)
	if err != nil {
		return CalculateBonusQueryResponse{}, err
	}

	response.FinalBonusPercentage = report.FinalBonusPercentage.
		Add(h.engine.TeamShare(teamReport, len(members)))
	response.BonusAmount = report.BonusAmount.
		Add(h.engine.TeamShareAmount(teamReport, len(members)))
	response.MemberShare = response.FinalBonusPercentage

	return response, nil
}

// collectInputs joins completed orders with their defect counts from the QA
// registry. Orders missing a completion timestamp are skipped.
func (h CalculateBonusQueryHandler) collectInputs(
	ctx context.Context,
	completed []*order.ProductionOrder,
) ([]services.BonusOrderInput, error) {
	inputs := make([]services.BonusOrderInput, 0, len(completed))
	for _, o := range completed {
		if o.CompletedAt() == nil {
			continue
		}

		defects, err := h.defects.DefectCount(ctx, o.ID())
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, services.BonusOrderInput{
			Quantity:              o.Quantity(),
			CompletedAt:           *o.CompletedAt(),
			EstimatedCompletionAt: o.EstimatedCompletionAt(),
			LaborCost:             o.TotalCost(),
			Defects:               defects,
		})
	}
	return inputs, nil
}

func reportResponse(report services.BonusReport) CalculateBonusQueryResponse {
	return CalculateBonusQueryResponse{
		CompletedOrders:      report.CompletedOrders,
		TotalProduced:        report.TotalProduced,
		OnTimeOrders:         report.OnTimeOrders,
		OnTimeRatio:          report.OnTimeRatio,
		TotalDefects:         report.TotalDefects,
		DefectRatio:          report.DefectRatio,
		ProductivityBonus:    report.ProductivityBonus,
		DeadlineBonus:        report.DeadlineBonus,
		FinalBonusPercentage: report.FinalBonusPercentage,
		BonusAmount:          report.BonusAmount,
		MemberShare:          report.FinalBonusPercentage,
	}
}
