package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/analyses"
	"resume-analysis/internal/extract"
	"resume-analysis/internal/fields"
	"resume-analysis/internal/shared/server/respond"
	"resume-analysis/internal/shared/util"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	MaxUploadSize int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = 10 << 20
	}
	return &Handler{Svc: svc, MaxUploadSize: maxUploadSize}
}

// RegisterRoutes attaches resume routes. AI-backed operations go on the
// limited group; listing stays unthrottled.
func (h *Handler) RegisterRoutes(rg, limited *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	limited.POST("/analyze-resume", h.analyze)
	limited.POST("/generate-questions", h.generateQuestions)
	limited.POST("/generate-improvements", h.generateImprovements)
}

type analyzeResponse struct {
	Resume            fields.ResumeRecord `json:"resume"`
	Analysis          analyses.Result     `json:"analysis"`
	StorageKey        string              `json:"storageKey"`
	AnalysisAvailable bool                `json:"analysisAvailable"`
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	result, err := h.Svc.Process(c.Request.Context(), fileName, content)
	if err != nil {
		var unsupported *extract.UnsupportedFormatError
		var extraction *extract.ExtractionError
		var storage *StorageError
		switch {
		case errors.As(err, &unsupported):
			respond.Error(c, http.StatusBadRequest, "unsupported_format", err.Error(), gin.H{"format": unsupported.Format})
		case errors.As(err, &extraction):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", err.Error(), nil)
		case errors.As(err, &storage):
			respond.Error(c, http.StatusInternalServerError, "storage_failed", "failed to persist analysis", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to analyze resume", nil)
		}
		return
	}

	c.Set("storageKey", result.StorageKey)
	respond.OK(c, analyzeResponse{
		Resume:            result.Entry.ResumeData,
		Analysis:          result.Entry.AIAnalysis,
		StorageKey:        result.StorageKey,
		AnalysisAvailable: result.Entry.AnalysisAvailable,
	})
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_failed", "failed to list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": entries, "count": len(entries)})
}

type questionsRequest struct {
	ResumeData fields.ResumeRecord `json:"resume_data"`
	Weaknesses []string            `json:"weaknesses"`
}

func (h *Handler) generateQuestions(c *gin.Context) {
	var req questionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	questions, err := h.Svc.Questions(c.Request.Context(), req.ResumeData, req.Weaknesses)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "analysis_unavailable", "AI service unavailable", nil)
		return
	}
	respond.OK(c, gin.H{"questions": questions, "count": len(questions)})
}

type improvementsRequest struct {
	ResumeData fields.ResumeRecord `json:"resume_data"`
	Weaknesses []string            `json:"weaknesses"`
	Answers    []analyses.Answer   `json:"answers"`
}

func (h *Handler) generateImprovements(c *gin.Context) {
	var req improvementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	improvements, err := h.Svc.Improvements(c.Request.Context(), req.ResumeData, req.Weaknesses, req.Answers)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "analysis_unavailable", "AI service unavailable", nil)
		return
	}
	respond.OK(c, gin.H{"improvements": improvements, "count": len(improvements), "status": "success"})
}
