package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"reportapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Without a
// database (local record directory mode) the record file routes are not
// registered and /health does not check one.
func RegisterRoutes(app *fiber.App, db *sql.DB, reportSvc service.ReportService, fileSvc service.RecordFileService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/programs", ListPrograms(reportSvc))
	app.Get("/filters", GetFilters(reportSvc))

	reports := app.Group("/reports")
	reports.Post("/preview", PreviewReports(reportSvc))
	reports.Post("/", RenderBundle(reportSvc))
	reports.Post("/:view", RenderReport(reportSvc))

	app.Post("/dataset/refresh", RefreshDataset(reportSvc))

	if fileSvc == nil {
		return
	}
	records := app.Group("/records")
	records.Get("/", ListRecordFiles(fileSvc))
	records.Post("/", UploadRecordFile(fileSvc))
	records.Get("/:id", GetRecordFile(fileSvc))
	records.Get("/:id/download", DownloadRecordFile(fileSvc))
	records.Delete("/:id", DeleteRecordFile(fileSvc))
}
