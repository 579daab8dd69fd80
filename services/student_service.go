package services

import (
	"context"
	"fmt"
	"strings"

	"journify/models"

	"gorm.io/gorm"
)

// ExtractedGoal is one goal/baseline pair found in a document.
type ExtractedGoal struct {
	Goal     string `json:"goal"`
	Baseline string `json:"baseline"`
}

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

func (s *StudentService) CreateStudent(ctx context.Context, name, grade string) (models.Student, error) {
	name = strings.TrimSpace(name)
	grade = strings.TrimSpace(grade)
	if name == "" || grade == "" {
		return models.Student{}, fmt.Errorf("%w: name and grade are required", ErrInvalidInput)
	}

	student := models.Student{Name: name, Grade: grade}
	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		return models.Student{}, castErr(err)
	}
	return student, nil
}

// GetStudent loads the student with its goals in insertion order.
func (s *StudentService) GetStudent(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Preload("Goals", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&student, "id = ?", id).Error
	if err != nil {
		return models.Student{}, castErr(err)
	}
	if student.Goals == nil {
		student.Goals = []models.LearningGoal{}
	}
	return student, nil
}

// AddGoals attaches goals to the student in one transaction and returns the
// number added.
func (s *StudentService) AddGoals(ctx context.Context, studentID uint, goals []ExtractedGoal) (int, error) {
	rows := make([]models.LearningGoal, 0, len(goals))
	for _, g := range goals {
		text := strings.TrimSpace(g.Goal)
		if text == "" {
			return 0, fmt.Errorf("%w: goal text is required", ErrInvalidInput)
		}
		rows = append(rows, models.LearningGoal{
			StudentID: studentID,
			GoalText:  text,
			Baseline:  strings.TrimSpace(g.Baseline),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Student{}).Where("id = ?", studentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, castErr(err)
	}
	return len(rows), nil
}
