package handler

import (
	"github.com/gofiber/fiber/v2"

	"reportapi/internal/curriculum"
	"reportapi/internal/render"
	"reportapi/internal/service"
)

// selectionRequest is the committed selection plus the output format. An
// omitted list keeps every observed value; an empty list accepts none.
type selectionRequest struct {
	curriculum.Selection
	Format string `json:"format,omitempty"`
}

// parseSelection reads a JSON selection body; ?format= fills in a missing format.
func parseSelection(c *fiber.Ctx) (selectionRequest, error) {
	var req selectionRequest
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}
	if req.Format == "" {
		req.Format = c.Query("format")
	}
	return req, nil
}

func sendDocument(c *fiber.Ctx, doc *render.Document) error {
	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, doc.ContentType)
	return c.Status(fiber.StatusOK).Send(doc.Body)
}

// ListPrograms returns the study programs present in the dataset.
//
//	@Summary	List study programs
//	@Tags		reports
//	@Produce	json
//	@Success	200	{object}	map[string][]string
//	@Failure	502	{object}	errorPayload
//	@Router		/programs [get]
func ListPrograms(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		programs, err := svc.Programs(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": programs})
	}
}

// GetFilters returns the selector options and defaults.
//
//	@Summary	Selector options
//	@Tags		reports
//	@Produce	json
//	@Success	200	{object}	service.Filters
//	@Router		/filters [get]
func GetFilters(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := svc.Filters(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(f)
	}
}

// PreviewReports returns the six report views as JSON.
//
//	@Summary	Preview reports
//	@Tags		reports
//	@Accept		json
//	@Produce	json
//	@Param		selection	body		selectionRequest	true	"Selection"
//	@Success	200			{object}	service.Preview
//	@Failure	400			{object}	errorPayload
//	@Failure	422			{object}	errorPayload
//	@Router		/reports/preview [post]
func PreviewReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseSelection(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid selection body")
		}
		p, err := svc.Preview(c.UserContext(), req.Selection)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// RenderReport streams one report as a document.
//
//	@Summary	Render one report
//	@Tags		reports
//	@Accept		json
//	@Produce	application/octet-stream
//	@Param		view		path	string				true	"content, competencies, preconditions, conditions, objectives or staff"
//	@Param		selection	body	selectionRequest	true	"Selection"
//	@Success	200
//	@Failure	404	{object}	errorPayload
//	@Router		/reports/{view} [post]
func RenderReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseSelection(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid selection body")
		}
		doc, err := svc.Render(c.UserContext(), req.Selection, c.Params("view"), req.Format)
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendDocument(c, doc)
	}
}

// RenderBundle streams all six reports in one zip archive.
//
//	@Summary	Render every report
//	@Tags		reports
//	@Accept		json
//	@Produce	application/zip
//	@Param		selection	body	selectionRequest	true	"Selection"
//	@Success	200
//	@Router		/reports [post]
func RenderBundle(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseSelection(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid selection body")
		}
		doc, err := svc.Bundle(c.UserContext(), req.Selection, req.Format)
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendDocument(c, doc)
	}
}

// RefreshDataset reloads the course records.
//
//	@Summary	Reload course records
//	@Tags		reports
//	@Produce	json
//	@Success	200	{object}	service.DatasetStatus
//	@Router		/dataset/refresh [post]
func RefreshDataset(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Refresh(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}
