package controllers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"journify/services"

	"github.com/gin-gonic/gin"
)

const maxDocumentSize = 10 << 20

type CreateStudentRequest struct {
	Name  string `json:"name" form:"name" binding:"required"`
	Grade string `json:"grade" form:"grade" binding:"required"`
}

type AddGoalsRequest struct {
	Goals []services.ExtractedGoal `json:"goals"`
}

type StudentController struct {
	students  *services.StudentService
	extractor services.GoalExtractor
}

func NewStudentController(students *services.StudentService, extractor services.GoalExtractor) *StudentController {
	return &StudentController{students: students, extractor: extractor}
}

// CreateStudent accepts a JSON or form encoded body.
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req CreateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		abortWithError(ctx, http.StatusBadRequest, codeInvalidRequest, "name and grade are required")
		return
	}

	student, err := c.students.CreateStudent(ctx.Request.Context(), req.Name, req.Grade)
	if err != nil {
		respondError(ctx, err, "student")
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"student_id": student.ID, "message": "Student added successfully"})
}

func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	student, err := c.students.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "student")
		return
	}
	ctx.JSON(http.StatusOK, student)
}

func (c *StudentController) AddStudentGoals(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req AddGoalsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		abortWithError(ctx, http.StatusBadRequest, codeInvalidRequest, "goals must be a list of {goal, baseline}")
		return
	}

	added, err := c.students.AddGoals(ctx.Request.Context(), id, req.Goals)
	if err != nil {
		respondError(ctx, err, "student")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Added %d goals for student", added),
		"added":   added,
	})
}

// ExtractGoals reads the multipart file iep_file and returns the goals
// found in it. Only text documents are read; PDFs and other binary uploads
// get 415. Extraction problems yield an empty list, not an error.
func (c *StudentController) ExtractGoals(ctx *gin.Context) {
	fh, err := ctx.FormFile("iep_file")
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, codeInvalidRequest, "No file uploaded")
		return
	}
	if fh.Filename == "" {
		abortWithError(ctx, http.StatusBadRequest, codeInvalidRequest, "No file selected")
		return
	}
	if fh.Size > maxDocumentSize {
		abortWithError(ctx, http.StatusBadRequest, codeInvalidRequest, "File too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(ctx, err, "document")
		return
	}
	defer f.Close()

	doc, err := io.ReadAll(io.LimitReader(f, maxDocumentSize))
	if err != nil {
		respondError(ctx, err, "document")
		return
	}

	if !isTextDocument(fh.Header.Get("Content-Type"), doc) {
		abortWithError(ctx, http.StatusUnsupportedMediaType, codeUnsupportedDoc,
			"Only plain text documents are supported; convert PDFs to text before uploading")
		return
	}

	goals := c.extractor.Extract(ctx.Request.Context(), doc)
	ctx.JSON(http.StatusOK, gin.H{"goals": goals})
}

// isTextDocument accepts uploads whose content sniffs as text/*, unless
// they are declared or marked as PDF.
// Empty bodies pass through and extract to nothing.
func isTextDocument(declared string, doc []byte) bool {
	if len(doc) == 0 {
		return true
	}
	if declared == "application/pdf" || bytes.HasPrefix(doc, []byte("%PDF-")) {
		return false
	}
	return strings.HasPrefix(http.DetectContentType(doc), "text/")
}
