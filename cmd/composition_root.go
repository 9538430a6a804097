package cmd

import (
	"log/slog"

	"atelier/internal/adapters/out/notify"
	"atelier/internal/adapters/out/postgres"
	"atelier/internal/adapters/out/postgres/catalogrepo"
	"atelier/internal/adapters/out/postgres/qarepo"
	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/services"
	"atelier/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	catalogRepo    *catalogrepo.GormCatalogRepository
	defectRegistry *qarepo.GormDefectRegistry
	publisher      *notify.LogPublisher
	allocator      *services.LotCodeAllocator
	costEngine     services.CostEngine
	bonusEngine    services.BonusEngine
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalogRepo:    catalogrepo.NewGormCatalogRepository(gormDB),
		defectRegistry: qarepo.NewGormDefectRegistry(gormDB),
		publisher:      notify.NewLogPublisher(logger),
		allocator:      services.NewLotCodeAllocator(),
		costEngine:     services.NewCostEngine(),
		bonusEngine:    services.NewBonusEngine(),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.allocator, c.catalogRepo, c.publisher)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	return commands.NewAdvanceStageCommandHandler(c.createUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateChangeStageCommandHandler() commands.ChangeStageCommandHandler {
	return commands.NewChangeStageCommandHandler(c.createUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(
		c.createUoWFactory(),
		c.costEngine,
		c.catalogRepo,
		c.catalogRepo,
		c.publisher,
	)
}

func (c *CompositionRoot) CreateBulkUpdateStatusCommandHandler() commands.BulkUpdateStatusCommandHandler {
	return commands.NewBulkUpdateStatusCommandHandler(c.CreateUpdateStatusCommandHandler())
}

func (c *CompositionRoot) CreateAssignTaskCommandHandler() commands.AssignTaskCommandHandler {
	return commands.NewAssignTaskCommandHandler(c.createUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCalculateBonusQueryHandler() queries.CalculateBonusQueryHandler {
	// Bonus reads do not mutate anything, so the repositories come from a
	// unit of work that never begins a transaction.
	uow := c.uowFactory.Create()
	return queries.NewCalculateBonusQueryHandler(
		uow.OrderRepository(),
		uow.StaffRepository(),
		c.defectRegistry,
		c.catalogRepo,
		c.bonusEngine,
	)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueOrdersQueryHandler(), logger)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
