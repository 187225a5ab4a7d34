package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"interview-prep-agent/internal/models"
	"interview-prep-agent/internal/services"
)

type UploadHandler struct {
	storageService services.StorageService
	extractor      services.TextExtractor
	audit          *services.AuditLogger
	maxFileSize    int64
}

func NewUploadHandler(
	storageService services.StorageService,
	extractor services.TextExtractor,
	audit *services.AuditLogger,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		extractor:      extractor,
		audit:          audit,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload: saves the CV file, extracts its text,
// and records the audit line. An upload that yields no text is rejected;
// there is nothing to interview about.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CV file uploaded. Please upload 'cv' as a PDF or DOCX file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		if models.KindOf(err) == models.KindUnsupportedFormat {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	cvText, err := h.extractor.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		status := fiber.StatusInternalServerError
		if models.KindOf(err) == models.KindUnsupportedFormat {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text: %v", err),
		})
	}

	if strings.TrimSpace(cvText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No text could be extracted from this file. Cannot start the interview agent.",
		})
	}

	if err := h.audit.Record(
		c.FormValue("name"),
		c.FormValue("job_role"),
		c.FormValue("job_company"),
		c.FormValue("job_country"),
		filename,
	); err != nil {
		// Audit is best-effort; the upload itself succeeded.
		log.Printf("⚠️  Failed to write audit log: %v\n", err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Filename:     filename,
		OriginalName: file.Filename,
		CVText:       cvText,
	})
}
