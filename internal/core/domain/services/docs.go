// Package services contains domain services that work across aggregates:
// the cost engine that replays an order's history into labor cost figures,
// the bonus engine that turns completed orders into a periodic bonus
// percentage, and the lot code allocator that hands out per-day-sequential
// order codes under concurrent creation.
//
// The engines are pure: every external value (hourly rate, sale price, bonus
// rule, defect counts) is passed in explicitly, never read from ambient
// state, so tests can inject arbitrary configurations.
package services
