package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gbirreria/gb-api/internal/application/auth"
	"github.com/gbirreria/gb-api/internal/application/catalog"
	"github.com/gbirreria/gb-api/internal/application/closeout"
	"github.com/gbirreria/gb-api/internal/application/export"
	"github.com/gbirreria/gb-api/internal/application/lots"
	"github.com/gbirreria/gb-api/internal/application/movements"
	"github.com/gbirreria/gb-api/internal/application/staff"
	"github.com/gbirreria/gb-api/internal/domain/entity"
)

// RouterDeps dipendenze per il router.
type RouterDeps struct {
	CatalogUC  *catalog.UseCase
	LotUC      *lots.UseCase
	MovementUC *movements.UseCase
	StaffUC    *staff.UseCase
	CloseoutUC *closeout.UseCase
	AuthUC     *auth.UseCase
	ExportUC   *export.UseCase
	JWTSecret  string
}

// Router registra le rotte della API. Lettura per tutti gli autenticati,
// scrittura riservata al ruolo manager.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	anyRole := RequireRole(entity.RoleManager, entity.RoleStaff)
	managerOnly := RequireRole(entity.RoleManager)

	// Auth (login pubblico)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), anyRole, authHandler.Me)

	// Rotte protette (Bearer Token obbligatorio)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catalogo prodotti
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", anyRole, productHandler.List)
	products.Post("/", managerOnly, productHandler.Create)
	products.Post("/inventory", managerOnly, productHandler.ApplyInventory)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", managerOnly, productHandler.Update)
	products.Delete("/:id", managerOnly, productHandler.Delete)
	products.Post("/:id/stock_in", managerOnly, productHandler.StockIn)
	products.Post("/:id/stock_out", managerOnly, productHandler.StockOut)
	products.Get("/:id/movements", anyRole, productHandler.Movements)

	// Lotti
	lotsGroup := protected.Group("/lots")
	lotHandler := NewLotHandler(deps.LotUC)
	lotsGroup.Get("/search/by-code", anyRole, lotHandler.SearchByCode)
	lotsGroup.Get("/product/:id", anyRole, lotHandler.ListByProduct)
	lotsGroup.Post("/product/:id", managerOnly, lotHandler.Create)
	lotsGroup.Put("/:id", managerOnly, lotHandler.Update)
	lotsGroup.Delete("/:id", managerOnly, lotHandler.Delete)

	// Registro movimenti
	movementsGroup := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movementsGroup.Get("/", anyRole, movementHandler.List)
	movementsGroup.Post("/", managerOnly, movementHandler.Create)

	// Personale
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.StaffUC)
	employees.Get("/", anyRole, employeeHandler.List)
	employees.Post("/", managerOnly, employeeHandler.Create)
	employees.Put("/:id", managerOnly, employeeHandler.Update)
	employees.Delete("/:id", managerOnly, employeeHandler.Delete)

	// Chiusure di cassa
	closeouts := protected.Group("/closeouts")
	closeoutHandler := NewCloseoutHandler(deps.CloseoutUC)
	closeouts.Get("/", anyRole, closeoutHandler.List)
	closeouts.Post("/", managerOnly, closeoutHandler.Create)
	closeouts.Get("/:id", anyRole, closeoutHandler.GetByID)

	// Esportazioni (solo manager)
	exports := protected.Group("/exports", managerOnly)
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/products.csv", exportHandler.ProductsCSV)
	exports.Get("/products.xlsx", exportHandler.ProductsXLSX)
	exports.Get("/closeouts.xlsx", exportHandler.CloseoutsXLSX)
	exports.Get("/closeouts/:id.pdf", exportHandler.CloseoutPDF)
}
