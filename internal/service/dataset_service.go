package service

import (
	"github.com/stemsi/educonnect-backend/internal/dataset"
	"github.com/stemsi/educonnect-backend/internal/model"
)

// DatasetService exposes the read-only school dataset.
type DatasetService struct {
	ds *dataset.Dataset
}

func NewDatasetService(ds *dataset.Dataset) *DatasetService {
	return &DatasetService{ds: ds}
}

func (s *DatasetService) Students() []model.Student {
	return s.ds.Students()
}

func (s *DatasetService) Templates() []model.MessageTemplate {
	return s.ds.Templates()
}
