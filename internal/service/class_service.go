package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/dataset"
	"github.com/stemsi/educonnect-backend/internal/model"
	"github.com/stemsi/educonnect-backend/internal/repository"
	"github.com/stemsi/educonnect-backend/internal/school"
	"github.com/xuri/excelize/v2"
)

var (
	ErrClassExists        = errors.New("class already exists")
	ErrClassLabelRequired = errors.New("class label is required")
	ErrClassNotFound      = errors.New("class not found")
)

// rosterHeader is the first row of an exported roster.
var rosterHeader = []interface{}{"ID", "Nome", "Série", "Responsável", "E-mail", "Telefone"}

// ClassService handles class business logic.
type ClassService struct {
	ds        *dataset.Dataset
	classRepo *repository.ClassRepository
	log       zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(ds *dataset.Dataset, classRepo *repository.ClassRepository, log zerolog.Logger) *ClassService {
	return &ClassService{
		ds:        ds,
		classRepo: classRepo,
		log:       log.With().Str("component", "class_service").Logger(),
	}
}

// List returns the dataset classes followed by classes added at runtime.
func (s *ClassService) List() []model.ClassInfo {
	classes := school.GroupByClass(s.ds.Students())
	for _, label := range s.classRepo.List() {
		classes, _ = school.AddClass(classes, label)
	}
	return classes
}

// Add registers a new, empty class.
func (s *ClassService) Add(label string) (*model.ClassInfo, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrClassLabelRequired
	}
	if school.HasClass(s.List(), label) || !s.classRepo.Add(label) {
		return nil, ErrClassExists
	}

	s.log.Info().Str("serie", label).Msg("Class added")
	return &model.ClassInfo{Serie: label}, nil
}

// Students returns the students enrolled in label.
func (s *ClassService) Students(label string) []model.Student {
	return school.StudentsInClass(s.ds.Students(), label)
}

// Export renders the roster of label as an XLSX workbook.
func (s *ClassService) Export(label string) ([]byte, error) {
	if !school.HasClass(s.List(), label) {
		return nil, ErrClassNotFound
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	sheet := sheetName(label)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &rosterHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, st := range s.Students(label) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{st.ID, st.Name, st.Serie, st.GuardianName, st.GuardianEmail, st.GuardianPhone}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

// RosterFileName is the download name of a class roster. Path separators and
// other characters excel or file systems reject are replaced.
func RosterFileName(label string) string {
	name := strings.TrimSpace(safeLabel(label))
	if name == "" {
		name = "turma"
	}
	return "turma-" + name + ".xlsx"
}

// sheetName strips characters excel forbids in sheet names and caps the length.
func sheetName(label string) string {
	name := strings.Trim(safeLabel(label), "'")
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if strings.TrimSpace(name) == "" {
		return "Turma"
	}
	return name
}

func safeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, label)
}
