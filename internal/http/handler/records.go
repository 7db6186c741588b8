package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reportapi/internal/service"
)

// ListRecordFiles lists uploaded course record files with limit & offset.
//
//	@Summary	List record files
//	@Tags		records
//	@Produce	json
//	@Param		limit	query		int		false	"Page size"	default(10)
//	@Param		offset	query		int		false	"Offset"	default(0)
//	@Param		program	query		string	false	"Study program"
//	@Success	200		{object}	service.RecordFileListResult
//	@Router		/records [get]
func ListRecordFiles(svc service.RecordFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), c.Query("program"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadRecordFile stores one course record file (multipart/form-data, field name: file).
//
//	@Summary	Upload a record file
//	@Tags		records
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"JSON or YAML course record"
//	@Success	201		{object}	model.RecordFile
//	@Failure	400		{object}	errorPayload
//	@Router		/records [post]
func UploadRecordFile(svc service.RecordFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		rec, err := svc.Upload(c.UserContext(), f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// GetRecordFile returns a record file's metadata.
//
//	@Summary	Get a record file
//	@Tags		records
//	@Produce	json
//	@Param		id	path		string	true	"Record file ID"
//	@Success	200	{object}	model.RecordFile
//	@Failure	404	{object}	errorPayload
//	@Router		/records/{id} [get]
func GetRecordFile(svc service.RecordFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DownloadRecordFile redirects to a short-lived download URL.
//
//	@Summary	Download a record file
//	@Tags		records
//	@Param		id	path	string	true	"Record file ID"
//	@Success	307
//	@Router		/records/{id}/download [get]
func DownloadRecordFile(svc service.RecordFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusTemporaryRedirect)
	}
}

// DeleteRecordFile removes a record file from storage and the index.
//
//	@Summary	Delete a record file
//	@Tags		records
//	@Param		id	path	string	true	"Record file ID"
//	@Success	204
//	@Failure	404	{object}	errorPayload
//	@Router		/records/{id} [delete]
func DeleteRecordFile(svc service.RecordFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
